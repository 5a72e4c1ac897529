package prompt

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Template is a compiled prompt template. It is immutable and safe for
// concurrent use.
type Template struct {
	src   string
	nodes []node
}

// Parse compiles src. Malformed tags and unbalanced blocks are reported here,
// so Render itself cannot fail.
func Parse(src string) (*Template, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	trimStandalone(toks)
	nodes, err := build(toks)
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return &Template{src: src, nodes: nodes}, nil
}

// MustParse is like Parse but panics on error. Intended for templates
// declared as package-level literals.
func MustParse(src string) *Template {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

// Source returns the uncompiled template text.
func (t *Template) Source() string { return t.src }

// Render substitutes data into the template. Absent values render as the
// empty string and falsy conditions take their else branch.
func (t *Template) Render(data map[string]any) string {
	var b strings.Builder
	root := &scope{value: data}
	renderNodes(&b, t.nodes, root, root)
	return b.String()
}

// Fields returns the sorted top-level input fields the template refers to.
// References inside #each bodies are attributed to the iterated element and
// are not reported unless they climb back to the root with ../ or @root.
func (t *Template) Fields() []string {
	seen := map[string]bool{}
	collectFields(t.nodes, 0, seen)
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// collectFields records root-level references. depth counts the enclosing
// each blocks, so "../x" at depth 1 names the root field x.
func collectFields(nodes []node, depth int, seen map[string]bool) {
	add := func(path string) {
		up := 0
		for strings.HasPrefix(path, "../") {
			path = path[3:]
			up++
		}
		switch {
		case strings.HasPrefix(path, "@root."):
			path = strings.TrimPrefix(path, "@root.")
		case strings.HasPrefix(path, "@"):
			return
		case up < depth:
			return
		}
		first, _, _ := strings.Cut(path, ".")
		if first == "" || first == "this" {
			return
		}
		seen[first] = true
	}
	for _, n := range nodes {
		switch n := n.(type) {
		case *varNode:
			add(n.path)
		case *blockNode:
			add(n.path)
			inner := depth
			if n.kind == "each" {
				inner++
			}
			collectFields(n.body, inner, seen)
			collectFields(n.elseBody, depth, seen)
		}
	}
}

type scope struct {
	value  any
	parent *scope
	vars   map[string]any
}

func renderNodes(b *strings.Builder, nodes []node, cur, root *scope) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *textNode:
			b.WriteString(n.text)
		case *varNode:
			v, _ := resolve(n.path, cur, root)
			b.WriteString(format(v))
		case *blockNode:
			renderBlock(b, n, cur, root)
		}
	}
}

func renderBlock(b *strings.Builder, n *blockNode, cur, root *scope) {
	v, _ := resolve(n.path, cur, root)
	switch n.kind {
	case "if":
		if truthy(v) {
			renderNodes(b, n.body, cur, root)
		} else {
			renderNodes(b, n.elseBody, cur, root)
		}
	case "unless":
		if !truthy(v) {
			renderNodes(b, n.body, cur, root)
		} else {
			renderNodes(b, n.elseBody, cur, root)
		}
	case "each":
		items, keys := iterate(v)
		if len(items) == 0 {
			renderNodes(b, n.elseBody, cur, root)
			return
		}
		for i, item := range items {
			vars := map[string]any{
				"index": i,
				"first": i == 0,
				"last":  i == len(items)-1,
			}
			if keys != nil {
				vars["key"] = keys[i]
			}
			renderNodes(b, n.body, &scope{value: item, parent: cur, vars: vars}, root)
		}
	}
}

func resolve(path string, cur, root *scope) (any, bool) {
	switch {
	case path == "this" || path == ".":
		return cur.value, true
	case strings.HasPrefix(path, "this."):
		return lookupPath(cur.value, strings.Split(path[len("this."):], "."))
	case path == "@root":
		return root.value, true
	case strings.HasPrefix(path, "@root."):
		return lookupPath(root.value, strings.Split(path[len("@root."):], "."))
	case strings.HasPrefix(path, "@"):
		for s := cur; s != nil; s = s.parent {
			if v, ok := s.vars[path[1:]]; ok {
				return v, true
			}
		}
		return nil, false
	case strings.HasPrefix(path, "../"):
		s := cur
		for strings.HasPrefix(path, "../") {
			if s.parent != nil {
				s = s.parent
			}
			path = path[3:]
		}
		return resolve(path, s, root)
	}

	// Bare paths stay in the current scope; outer values need ../ or @root
	return lookupPath(cur.value, strings.Split(path, "."))
}

func lookupPath(v any, segs []string) (any, bool) {
	for _, seg := range segs {
		next, ok := lookup(v, seg)
		if !ok {
			return nil, false
		}
		v = next
	}
	return v, true
}

func lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		val, ok := m[key]
		return val, ok
	case map[string]string:
		val, ok := m[key]
		return val, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(m) {
			return nil, false
		}
		return m[i], true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// iterate returns the elements of a slice in order, or the values of a map in
// key order together with the keys.
func iterate(v any) ([]any, []string) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return s, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		}
		return out, keys
	}
	return nil, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case json.Number:
		return x.String() != "0"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case json.Number:
		return x.String()
	case []string:
		return strings.Join(x, ", ")
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if !isScalar(elem) {
				return toJSON(v)
			}
			parts = append(parts, format(elem))
		}
		return strings.Join(parts, ", ")
	case reflect.Map, reflect.Struct:
		return toJSON(v)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, int, int64, float64, float32, json.Number:
		return true
	}
	return false
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
