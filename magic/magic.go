// Package magic derives the RC5 magic constants P and Q for a word width.
//
// P is Odd((e-2) * 2^w) and Q is Odd((phi-1) * 2^w). Neither fits a native
// integer at large widths, so the derivation runs on decimal digit strings.
// Common widths are precomputed in Known; Lookup only derives the others.
package magic

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cloudflare/rc5/configerr"
)

const (
	// MaxWidth bounds derivation by the precision of the seeds below.
	MaxWidth = 2048

	// Digits of e-2, from https://www.math.utah.edu/~pa/math/e.html
	eMinus2 = "0.7182818284590452353602874713526624977572470936999595749669676277240766303535475945713821785251664274274663919320030599218174135966290435729003342952605956307381323286279434907632338298807531952510190115738341879307021540891499348841675092447614606680822648001684774118537423454424371075390777449920695517027618386062613313845830007520449338265602976067371132007093287091274437470472306969772093101416928368190255151086574637721112523897844250569536967707854499699679468644549059879316368892300987931277361782154249992295763514822082698951936680331825288693984964651058209392398294887933203625094431173012381970684161403970198376793206832823764648042953118023287825098194558153017567173613320698112509961818815930416903515988885193458072738667385894228792284998920868058257492796104841984443634632449684875602336248270419786232090021609"

	// Digits of phi-1, from http://www2.cs.arizona.edu/icon/oddsends/phi.htm
	phiMinus1 = "0.6180339887498948482045868343656381177203091798057628621354486227052604628189024497072072041893911374847540880753868917521266338622235369317931800607667263544333890865959395829056383226613199282902678806752087668925017116962070322210432162695486262963136144381497587012203408058879544547492461856953648644492410443207713449470495658467885098743394422125448770664780915884607499887124007652170575179788341662562494075890697040002812104276217711177780531531714101170466659914669798731761356006708748071013179523689427521948435305678300228785699782977834784587822891109762500302696156170025046433824377648610283831268330372429267526311653392473167111211588186385133162038400522216579128667529465490681131715993432359734949850904094762132229810172610705961164562990981629055520852479035240602017279974717534277759277862561943208275051312181562"
)

var (
	ErrUnsupportedWidth = configerr.ErrUnsupportedWidth
	ErrMismatch         = errors.New("derived constants do not match the precomputed table")
)

// Constants holds P and Q for one width as upper-case big-endian hex
// literals of Width/4 digits.
type Constants struct {
	Width int    `json:"width" yaml:"width"`
	P     string `json:"p" yaml:"p"`
	Q     string `json:"q" yaml:"q"`
}

// Known are the constants for the word widths the cipher supports.
var Known = map[int]Constants{
	8:   {Width: 8, P: "B7", Q: "9F"},
	16:  {Width: 16, P: "B7E1", Q: "9E37"},
	32:  {Width: 32, P: "B7E15163", Q: "9E3779B9"},
	64:  {Width: 64, P: "B7E151628AED2A6B", Q: "9E3779B97F4A7C15"},
	128: {Width: 128, P: "B7E151628AED2A6ABF7158809CF4F3C7", Q: "9E3779B97F4A7C15F39CC0605CEDC835"},
}

// ValidWidth reports an error unless width is a positive multiple of 8 no
// larger than MaxWidth.
func ValidWidth(width int) error {
	if width <= 0 || width%8 != 0 || width > MaxWidth {
		return configerr.New(ErrUnsupportedWidth, "width %d must be a multiple of 8 between 8 and %d", width, MaxWidth)
	}
	return nil
}

// Derive computes P and Q for width bits from the decimal seeds.
func Derive(width int) (Constants, error) {
	if err := ValidWidth(width); err != nil {
		return Constants{}, err
	}
	p, err := deriveOne(eMinus2, width)
	if err != nil {
		return Constants{}, errors.Wrap(err, "deriving P")
	}
	q, err := deriveOne(phiMinus1, width)
	if err != nil {
		return Constants{}, errors.Wrap(err, "deriving Q")
	}
	return Constants{Width: width, P: p, Q: q}, nil
}

func deriveOne(seed string, width int) (string, error) {
	d, err := parseDecimal(seed)
	if err != nil {
		return "", err
	}
	for i := 0; i < width; i++ {
		d.mulSmall(2)
	}
	binary := decimalToBinary(d.integerDigits())
	if len(binary) > width {
		return "", errors.Errorf("seed scaled by 2^%d has %d binary digits", width, len(binary))
	}
	binary = padBinary(binary, width)
	forceOdd(binary)
	return binaryToHex(binary)
}

// Lookup returns the precomputed constants for width, deriving them when
// the width is not in Known.
func Lookup(width int) (Constants, error) {
	if c, ok := Known[width]; ok {
		return c, nil
	}
	return Derive(width)
}

// Verify derives the constants for a width in Known and compares them with
// the table.
func Verify(width int) (Constants, error) {
	if _, ok := Known[width]; !ok {
		return Constants{}, configerr.New(ErrUnsupportedWidth, "no precomputed constants for width %d", width)
	}
	derived, err := Derive(width)
	if err != nil {
		return Constants{}, err
	}
	return derived, CheckKnown(derived)
}

// CheckKnown compares already derived constants with Known. Widths missing
// from Known always pass.
func CheckKnown(derived Constants) error {
	known, ok := Known[derived.Width]
	if !ok {
		return nil
	}
	if !strings.EqualFold(derived.P, known.P) || !strings.EqualFold(derived.Q, known.Q) {
		return errors.Wrapf(ErrMismatch, "width %d: derived P=%s Q=%s, table P=%s Q=%s",
			derived.Width, derived.P, derived.Q, known.P, known.Q)
	}
	return nil
}
