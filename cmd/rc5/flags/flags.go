package flags

const (
	// Config is the path of the YAML configuration file
	Config = "config"

	// Profile selects a named set of cipher parameters from the configuration file
	Profile = "profile"

	// WordSize is the RC5 word size in bits
	WordSize = "word-size"

	// Rounds is the number of RC5 rounds
	Rounds = "rounds"

	// KeySize is the key length in bytes. Defaults to the length of --key
	KeySize = "key-size"

	// Key is the secret key as hex
	Key = "key"

	// Block is the input block as hex
	Block = "block"

	// P and Q override the magic constants, as big-endian hex
	P = "p"
	Q = "q"

	// CacheSchedules keeps expanded keys between blocks
	CacheSchedules = "cache-schedules"

	// Width lists the word sizes to derive magic constants for
	Width = "width"

	// Verify re-derives the precomputed constants and compares them
	Verify = "verify"

	// Output is the output format of commands that print structured data
	Output = "output"

	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"

	// Blocks is the number of blocks the benchmark encrypts
	Blocks = "blocks"

	// Workers is the number of goroutines the benchmark encrypts with. Defaults to GOMAXPROCS
	Workers = "workers"

	// LogLevel is the command line flag for the logging level
	LogLevel = "loglevel"

	// LogFile is the command line flag to define the file where application logs will be stored
	LogFile = "logfile"

	// LogDirectory is the command line flag to define the directory where application logs will be stored.
	LogDirectory = "log-directory"

	// LogFormat allows the command line logs to be output as JSON.
	LogFormat             = "log-format"
	LogFormatValueDefault = "default"
	LogFormatValueJSON    = "json"
)
