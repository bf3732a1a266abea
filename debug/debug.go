package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Set   bool
	Walk  bool
	Wrap  bool
	Parse bool
}

var d *debug

func init() {
	d = &debug{}
	d.Set = boolEnv("NESTMAP_DEBUG_SET")
	d.Walk = boolEnv("NESTMAP_DEBUG_WALK")
	d.Wrap = boolEnv("NESTMAP_DEBUG_WRAP")
	d.Parse = boolEnv("NESTMAP_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Set() bool {
	return d.Set
}
func Walk() bool {
	return d.Walk
}
func Wrap() bool {
	return d.Wrap
}
func Parse() bool {
	return d.Parse
}
