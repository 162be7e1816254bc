package notify

import (
	"fmt"

	"github.com/fatih/color"
)

// TAB is the amount of indent per level
const TAB = "  "

var tag string
var verbose bool

func init() {
	tag = "[seshin] "
	verbose = true
}

// SetTag changes the prompt printed before each message
func SetTag(newTag string) {
	tag = newTag
}

// SetVerbose on or off
func SetVerbose(on bool) {
	verbose = on
}

// LnF prints a formatted line to stdOut if in verbose mode
func LnF(format string, a ...interface{}) {
	if verbose {
		fmt.Printf(tag+format+"\n", a...)
	}
}

// LnGreenF prints a green formatted line to stdOut if in verbose mode
func LnGreenF(format string, a ...interface{}) {
	lnColorF(color.FgGreen, format, a...)
}

// LnRedF prints a red formatted line to stdOut if in verbose mode
func LnRedF(format string, a ...interface{}) {
	lnColorF(color.FgRed, format, a...)
}

// LnYellowF prints a yellow formatted line to stdOut if in verbose mode
func LnYellowF(format string, a ...interface{}) {
	lnColorF(color.FgYellow, format, a...)
}

// LnBlueF prints a blue formatted line to stdOut if in verbose mode
func LnBlueF(format string, a ...interface{}) {
	lnColorF(color.FgBlue, format, a...)
}

// LnMagentaF prints a magenta formatted line to stdOut if in verbose mode
func LnMagentaF(format string, a ...interface{}) {
	lnColorF(color.FgMagenta, format, a...)
}

func lnColorF(c color.Attribute, format string, a ...interface{}) {
	if verbose {
		color.Set(c)
		fmt.Printf(tag+format+"\n", a...)
		color.Unset()
	}
}

// Indent returns lvl levels of indentation to prefix onto a message
func Indent(lvl int) string {
	indent := ""
	for i := 0; i < lvl; i++ {
		indent += TAB
	}
	return indent
}
