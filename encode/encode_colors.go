package encode

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/printer"
)

type ColorAttr int

const (
	KeyColor ColorAttr = iota
	StringColor
	NumberColor
	BoolColor
	CommentColor
)

type Colors struct {
	Map map[ColorAttr]color.Attribute
}

func NewColors() *Colors {
	return &Colors{
		Map: map[ColorAttr]color.Attribute{
			KeyColor:     color.FgHiCyan,
			StringColor:  color.FgHiGreen,
			NumberColor:  color.FgHiMagenta,
			BoolColor:    color.FgHiYellow,
			CommentColor: color.FgHiBlack,
		},
	}
}

func (c *Colors) property(a ColorAttr) printer.PrintFunc {
	attr, ok := c.Map[a]
	if !ok {
		return nil
	}
	return func() *printer.Property {
		return &printer.Property{
			Prefix: escape(attr),
			Suffix: escape(color.Reset),
		}
	}
}

func (c *Colors) printer() *printer.Printer {
	return &printer.Printer{
		MapKey:  c.property(KeyColor),
		String:  c.property(StringColor),
		Number:  c.property(NumberColor),
		Bool:    c.property(BoolColor),
		Comment: c.property(CommentColor),
	}
}

func escape(a color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", a)
}
