package prompt

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokText tokenKind = iota
	tokVar
	tokOpen
	tokElse
	tokClose
	tokComment
)

type token struct {
	kind  tokenKind
	text  string // literal text for tokText
	block string // each, if, unless
	path  string
	pos   int
}

// standalone reports whether the tag may swallow its own line.
func (t token) standalone() bool {
	return t.kind == tokOpen || t.kind == tokElse || t.kind == tokClose || t.kind == tokComment
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		start := strings.Index(src[i:], "{{")
		if start < 0 {
			toks = append(toks, token{kind: tokText, text: src[i:], pos: i})
			break
		}
		if start > 0 {
			toks = append(toks, token{kind: tokText, text: src[i : i+start], pos: i})
		}
		pos := i + start
		rest := src[pos:]

		var body string
		var raw bool
		switch {
		case strings.HasPrefix(rest, "{{!--"):
			end := strings.Index(rest, "--}}")
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment at offset %d", pos)
			}
			toks = append(toks, token{kind: tokComment, pos: pos})
			i = pos + end + len("--}}")
			continue
		case strings.HasPrefix(rest, "{{{"):
			end := strings.Index(rest, "}}}")
			if end < 0 {
				return nil, fmt.Errorf("unterminated tag at offset %d", pos)
			}
			body = rest[3:end]
			raw = true
			i = pos + end + 3
		default:
			end := strings.Index(rest, "}}")
			if end < 0 {
				return nil, fmt.Errorf("unterminated tag at offset %d", pos)
			}
			body = rest[2:end]
			i = pos + end + 2
		}

		tok, err := classify(strings.TrimSpace(body), raw, pos)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func classify(body string, raw bool, pos int) (token, error) {
	if body == "" {
		return token{}, fmt.Errorf("empty tag at offset %d", pos)
	}
	if raw {
		if err := checkPath(body); err != nil {
			return token{}, fmt.Errorf("offset %d: %w", pos, err)
		}
		return token{kind: tokVar, path: body, pos: pos}, nil
	}

	switch body[0] {
	case '!':
		return token{kind: tokComment, pos: pos}, nil
	case '#':
		name, arg, _ := strings.Cut(body[1:], " ")
		arg = strings.TrimSpace(arg)
		switch name {
		case "each", "if", "unless":
		default:
			return token{}, fmt.Errorf("offset %d: unknown block helper %q", pos, name)
		}
		if err := checkPath(arg); err != nil {
			return token{}, fmt.Errorf("offset %d: #%s: %w", pos, name, err)
		}
		return token{kind: tokOpen, block: name, path: arg, pos: pos}, nil
	case '/':
		return token{kind: tokClose, block: strings.TrimSpace(body[1:]), pos: pos}, nil
	}

	if body == "else" {
		return token{kind: tokElse, pos: pos}, nil
	}
	if err := checkPath(body); err != nil {
		return token{}, fmt.Errorf("offset %d: %w", pos, err)
	}
	return token{kind: tokVar, path: body, pos: pos}, nil
}

func checkPath(p string) error {
	if p == "" {
		return fmt.Errorf("missing path")
	}
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == '@', r == '-', r == '/':
		default:
			return fmt.Errorf("invalid character %q in path %q", r, p)
		}
	}
	return nil
}

// trimStandalone removes the surrounding whitespace and newline of block tags
// that sit alone on their line, so control structures do not leave blank lines.
func trimStandalone(toks []token) {
	type cut struct{ left, right bool }
	cuts := make([]cut, len(toks))

	for i, t := range toks {
		if !t.standalone() {
			continue
		}

		leftOK := i == 0
		if i > 0 && toks[i-1].kind == tokText {
			prev := toks[i-1].text
			if nl := strings.LastIndexByte(prev, '\n'); nl >= 0 {
				leftOK = isBlank(prev[nl+1:])
			} else {
				leftOK = i-1 == 0 && isBlank(prev)
			}
		}

		rightOK := i == len(toks)-1
		if i+1 < len(toks) && toks[i+1].kind == tokText {
			next := toks[i+1].text
			if nl := strings.IndexByte(next, '\n'); nl >= 0 {
				rightOK = isBlank(next[:nl])
			} else {
				rightOK = i+1 == len(toks)-1 && isBlank(next)
			}
		}

		if leftOK && rightOK {
			if i > 0 {
				cuts[i-1].right = true
			}
			if i+1 < len(toks) {
				cuts[i+1].left = true
			}
		}
	}

	for i := range toks {
		if toks[i].kind != tokText || (!cuts[i].left && !cuts[i].right) {
			continue
		}
		text := toks[i].text
		lo, hi := 0, len(text)
		if cuts[i].left {
			if nl := strings.IndexByte(text, '\n'); nl >= 0 {
				lo = nl + 1
			} else {
				lo = len(text)
			}
		}
		if cuts[i].right {
			if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
				hi = nl + 1
			} else {
				hi = 0
			}
		}
		if lo > hi {
			lo = hi
		}
		toks[i].text = text[lo:hi]
	}
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t\r") == ""
}

type node interface{}

type textNode struct{ text string }

type varNode struct{ path string }

type blockNode struct {
	kind     string
	path     string
	body     []node
	elseBody []node
}

// build assembles the token stream into a tree, checking that every block is
// closed by a matching tag.
func build(toks []token) ([]node, error) {
	type frame struct {
		block  *blockNode
		inElse bool
		pos    int
	}
	root := &blockNode{}
	stack := []*frame{{block: root}}

	appendNode := func(n node) {
		top := stack[len(stack)-1]
		if top.inElse {
			top.block.elseBody = append(top.block.elseBody, n)
		} else {
			top.block.body = append(top.block.body, n)
		}
	}

	for _, t := range toks {
		switch t.kind {
		case tokText:
			if t.text != "" {
				appendNode(&textNode{text: t.text})
			}
		case tokVar:
			appendNode(&varNode{path: t.path})
		case tokComment:
		case tokOpen:
			b := &blockNode{kind: t.block, path: t.path}
			appendNode(b)
			stack = append(stack, &frame{block: b, pos: t.pos})
		case tokElse:
			top := stack[len(stack)-1]
			if len(stack) == 1 {
				return nil, fmt.Errorf("offset %d: {{else}} outside of a block", t.pos)
			}
			if top.inElse {
				return nil, fmt.Errorf("offset %d: duplicate {{else}} in #%s", t.pos, top.block.kind)
			}
			top.inElse = true
		case tokClose:
			if len(stack) == 1 {
				return nil, fmt.Errorf("offset %d: unexpected {{/%s}}", t.pos, t.block)
			}
			top := stack[len(stack)-1]
			if top.block.kind != t.block {
				return nil, fmt.Errorf("offset %d: {{/%s}} closes #%s opened at offset %d", t.pos, t.block, top.block.kind, top.pos)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, fmt.Errorf("offset %d: unclosed #%s", top.pos, top.block.kind)
	}
	return root.body, nil
}
