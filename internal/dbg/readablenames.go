package dbg

import (
	"fmt"
	"reflect"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
)

// This converts arbitrary keys into random readable names. It flagrantly
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. Graph handles are just integers, which are hard to
// tell apart in a wall of debug output, so nodes, directed edges and rings get
// a name instead.

var memo map[interface{}]string

func init() {
	memo = make(map[interface{}]string)
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// Kinds of things get their own colour so they're easy to spot.
func NodeName(obj interface{}) string {
	return aurora.Cyan(Name(obj)).String()
}

func EdgeName(obj interface{}) string {
	return aurora.Green(Name(obj)).String()
}

func RingName(obj interface{}) string {
	return aurora.Yellow(Name(obj)).String()
}

// Dump pretty prints any value, for when String() isn't enough.
func Dump(v interface{}) string {
	return pretty.Sprint(v)
}
