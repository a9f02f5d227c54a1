package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Readable names for pointers, so that nodes and edges can be told apart in
// logs and debug output. Names are generated lazily, in order of demand, and
// are never released. They only mean something within one run.
//
// Polygons are intersected concurrently by the mesh package, so the memo is
// guarded.

var (
	mu   sync.Mutex
	memo = map[interface{}]string{}
)

func init() {
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
	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// Forget every name given so far.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	memo = map[interface{}]string{}
}
