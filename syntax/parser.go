package syntax

import (
	"fmt"

	"github.com/coregx/coregen/charset"
)

// compiler carries the configuration and root pattern through the recursive
// compilation of alternation branches.
type compiler struct {
	cfg     Config
	pattern string
}

func (c *compiler) errAt(kind ErrorKind, pos int) error {
	return &Error{Kind: kind, Pos: pos, Pattern: c.pattern}
}

// Compile lexes and parses a pattern into its root node.
//
// The root is an OpGroup whose Sub holds the top-level atoms in source order.
// Every alternation branch is compiled here, once.
//
// Example:
//
//	root, err := syntax.Compile(`[0-9]{3}-(x|y)`, syntax.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(root.Sub)) // 3
func Compile(pattern string, cfg Config) (*Node, error) {
	c := &compiler{cfg: cfg.withDefaults(), pattern: pattern}
	return c.compile(pattern, 0, 0)
}

// Parse builds the tree for a token list produced by Lex.
//
// A quantifier that does not follow an atom is skipped. Apart from nesting
// limits, Parse accepts every token list Lex can produce.
func Parse(tokens []Token, cfg Config) (*Node, error) {
	c := &compiler{cfg: cfg.withDefaults()}
	return c.parse(tokens, 0)
}

func (c *compiler) compile(src string, base, depth int) (*Node, error) {
	tokens, err := c.lex(src, base, depth)
	if err != nil {
		return nil, err
	}
	return c.parse(tokens, depth)
}

// parser turns one token list into one sequence.
type parser struct {
	c      *compiler
	tokens []Token
	pos    int
	depth  int
}

func (c *compiler) parse(tokens []Token, depth int) (*Node, error) {
	p := &parser{c: c, tokens: tokens, depth: depth}
	sub, err := p.parseSequence(false, 0)
	if err != nil {
		return nil, err
	}
	return &Node{Op: OpGroup, Rep: One, Sub: sub}, nil
}

// parseSequence collects atoms until the end of input or, inside a group,
// until the closing token, which it leaves for the caller.
func (p *parser) parseSequence(inGroup bool, openPos int) ([]*Node, error) {
	var nodes []*Node
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		switch tok.Kind {
		case TokenQuantifier:
			// nothing to repeat
			p.pos++
			continue
		case TokenGroupClose:
			if !inGroup {
				return nil, p.c.errAt(UnmatchedGroupClose, tok.Pos)
			}
			return nodes, nil
		}

		node, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if p.pos < len(p.tokens) && p.tokens[p.pos].Kind == TokenQuantifier {
			q := p.tokens[p.pos]
			if q.Min > q.Max {
				return nil, p.c.errAt(InvalidQuantifier, q.Pos)
			}
			node.Rep = Repeat{Min: q.Min, Max: q.Max}
			p.pos++
		}
		node.Silent = silent(node)
		nodes = append(nodes, node)
	}

	if inGroup {
		return nil, p.c.errAt(UnterminatedGroup, openPos)
	}
	return nodes, nil
}

func (p *parser) parseAtom() (*Node, error) {
	tok := p.tokens[p.pos]
	p.pos++

	switch tok.Kind {
	case TokenLiteral:
		return &Node{Op: OpLiteral, Rep: One, Rune: tok.Rune}, nil

	case TokenCharClass:
		class := charset.New(tok.Members...)
		set := class
		if tok.Negated {
			set = class.Complement()
		}
		if set.IsEmpty() {
			return nil, p.c.errAt(EmptyClass, tok.Pos)
		}
		return &Node{Op: OpCharClass, Rep: One, Negated: tok.Negated, Class: class, Set: set}, nil

	case TokenEscape:
		return &Node{
			Op:      OpEscape,
			Rep:     One,
			Rune:    tok.Rune,
			Negated: tok.Negated,
			Set:     escapeSet(tok.Rune, tok.Negated),
		}, nil

	case TokenAnyChar:
		return &Node{Op: OpAnyChar, Rep: One, Set: charset.Printable}, nil

	case TokenStartAnchor:
		return &Node{Op: OpBeginText, Rep: One}, nil

	case TokenEndAnchor:
		return &Node{Op: OpEndText, Rep: One}, nil

	case TokenAlternation:
		return p.parseAlternation(tok)

	case TokenGroupOpen:
		return p.parseGroup(tok)

	default:
		panic(fmt.Sprintf("syntax: unexpected %v token at offset %d", tok.Kind, tok.Pos))
	}
}

func (p *parser) parseGroup(open Token) (*Node, error) {
	if p.depth >= p.c.cfg.MaxNestingDepth {
		return nil, p.c.errAt(NestingTooDeep, open.Pos)
	}

	p.depth++
	sub, err := p.parseSequence(true, open.Pos)
	p.depth--
	if err != nil {
		return nil, err
	}
	p.pos++ // ')'

	return &Node{Op: OpGroup, Rep: One, Group: open.Group, Name: open.Name, Sub: sub}, nil
}

// parseAlternation compiles every branch into its own root. This is the only
// place branches are compiled; generation reuses the result.
func (p *parser) parseAlternation(tok Token) (*Node, error) {
	if len(tok.Branches) == 0 {
		return &Node{Op: OpGroup, Rep: One, Group: tok.Group, Name: tok.Name}, nil
	}
	if p.depth >= p.c.cfg.MaxNestingDepth {
		return nil, p.c.errAt(NestingTooDeep, tok.Pos)
	}

	branches := make([]*Node, 0, len(tok.Branches))
	for _, b := range tok.Branches {
		root, err := p.c.compile(b.Source, b.Pos, p.depth+1)
		if err != nil {
			return nil, err
		}
		branches = append(branches, root)
	}

	return &Node{Op: OpAlternate, Rep: One, Group: tok.Group, Name: tok.Name, Branches: branches}, nil
}

// silent reports whether n can never write output. Its children are already
// marked, so only one level is inspected.
func silent(n *Node) bool {
	if n.Rep.Max == 0 {
		return true
	}
	switch n.Op {
	case OpBeginText, OpEndText:
		return true
	case OpGroup:
		return n.Group.IsLookaround() || allSilent(n.Sub)
	case OpAlternate:
		for _, br := range n.Branches {
			if !allSilent(br.Sub) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func allSilent(nodes []*Node) bool {
	for _, n := range nodes {
		if !n.Silent {
			return false
		}
	}
	return true
}

// escapeSet returns the characters a meta-escape stands for, or the empty
// set for a letter that is not a meta-escape.
func escapeSet(letter rune, negated bool) charset.Set {
	var set charset.Set
	switch letter {
	case 'd':
		set = charset.Digit
	case 'w':
		set = charset.Word
	case 's':
		set = charset.Space
	default:
		return charset.Set{}
	}
	if negated {
		return set.Complement()
	}
	return set
}
