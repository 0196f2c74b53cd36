package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTypeName         = "bool"
	toggleBareValue        = "true"
	errorToggleValueFormat = "--%s expects one of %s, got %q"
	errorToggleUnboundMsg  = "toggle flag has no destination"
)

// toggleSpellings maps every accepted spelling of a toggle value onto its state.
var toggleSpellings = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// toggleFlag is a pflag.Value for switches such as --files and --size.
type toggleFlag struct {
	destination *bool
	name        string
}

func (toggle *toggleFlag) Set(raw string) error {
	if toggle == nil || toggle.destination == nil {
		return fmt.Errorf("%s: %q", errorToggleUnboundMsg, raw)
	}
	spelling := strings.ToLower(strings.TrimSpace(raw))
	if spelling == "" {
		spelling = toggleBareValue
	}
	enabled, known := toggleSpellings[spelling]
	if !known {
		return fmt.Errorf(errorToggleValueFormat, toggle.name, acceptedToggleSpellings(), raw)
	}
	*toggle.destination = enabled
	return nil
}

func (toggle *toggleFlag) String() string {
	if toggle == nil || toggle.destination == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*toggle.destination)
}

func (toggle *toggleFlag) Type() string {
	return toggleTypeName
}

func acceptedToggleSpellings() string {
	spellings := make([]string, 0, len(toggleSpellings))
	for spelling := range toggleSpellings {
		spellings = append(spellings, spelling)
	}
	sort.Strings(spellings)
	return strings.Join(spellings, "|")
}

// registerBooleanFlag binds a switch that is true when given bare and
// otherwise takes any spelling from toggleSpellings via --name=value.
func registerBooleanFlag(flagSet *pflag.FlagSet, destination *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || destination == nil {
		return
	}
	*destination = defaultValue
	flagSet.VarP(&toggleFlag{destination: destination, name: name}, name, shorthand, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = toggleBareValue
}
