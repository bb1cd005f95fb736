package cliutil

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
)

type BuildInfo struct {
	GoOS       string `json:"go_os"`
	GoVersion  string `json:"go_version"`
	GoArch     string `json:"go_arch"`
	BuildType  string `json:"build_type"`
	BuildTime  string `json:"build_time"`
	RC5Version string `json:"rc5_version"`
}

func GetBuildInfo(buildType, buildTime, version string) *BuildInfo {
	return &BuildInfo{
		GoOS:       runtime.GOOS,
		GoVersion:  runtime.Version(),
		GoArch:     runtime.GOARCH,
		BuildType:  buildType,
		BuildTime:  buildTime,
		RC5Version: version,
	}
}

func (bi *BuildInfo) Log(log *zerolog.Logger) {
	log.Info().Msgf("Version %s", bi.RC5Version)
	if bi.BuildType != "" {
		log.Info().Msgf("Built%s", bi.GetBuildTypeMsg())
	}
	log.Info().Msgf("GOOS: %s, GOVersion: %s, GoArch: %s", bi.GoOS, bi.GoVersion, bi.GoArch)
}

func (bi *BuildInfo) OSArch() string {
	return fmt.Sprintf("%s_%s", bi.GoOS, bi.GoArch)
}

func (bi *BuildInfo) Version() string {
	return bi.RC5Version
}

func (bi *BuildInfo) GetBuildTypeMsg() string {
	if bi.BuildType == "" {
		return ""
	}
	return fmt.Sprintf(" with %s", bi.BuildType)
}

// String is the text printed by the version command.
func (bi *BuildInfo) String() string {
	return fmt.Sprintf("rc5 version %s (built %s%s) %s %s", bi.RC5Version, bi.BuildTime, bi.GetBuildTypeMsg(), bi.OSArch(), bi.GoVersion)
}
