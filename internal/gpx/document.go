package gpx

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/muktihari/xmltokenizer"
)

const rootElement = "gpx"

// Attr is an element attribute with its namespace prefix removed.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a parsed document.
type Node struct {
	Name string

	fullName string
	attrs    []Attr
	text     strings.Builder
	children []*Node
	parent   *Node
	index    int
}

// FirstChild returns the first child element with the given local name, or nil.
func (n *Node) FirstChild(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// NextSibling returns the next element after n under the same parent with the
// given local name, or nil.
func (n *Node) NextSibling(name string) *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	for i := n.index + 1; i < len(siblings); i++ {
		if siblings[i].Name == name {
			return siblings[i]
		}
	}
	return nil
}

// Attr returns the value of the first attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the trimmed character data directly inside n.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.text.String())
}

// Document is a parsed GPX document.
type Document struct {
	root *Node
}

// Root returns the document element.
func (d *Document) Root() *Node { return d.root }

// ParseDocument builds an element tree from raw XML and checks that the document
// element is <gpx>.
func ParseDocument(data []byte) (*Document, error) {
	src, err := canonicalize(data)
	if err != nil {
		return nil, newError(KindFormat, fmt.Errorf("%w: %v", ErrMalformedXML, err))
	}

	// A single token may span the whole input, e.g. a large <desc>.
	tok := xmltokenizer.New(bytes.NewReader(src),
		xmltokenizer.WithReadBufferSize(readBufferSize),
		xmltokenizer.WithAutoGrowBufferMaxLimitSize(len(src)+2*readBufferSize),
	)

	var (
		root  *Node
		stack []*Node
	)
	for {
		token, err := tok.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(KindFormat, fmt.Errorf("%w: %v", ErrMalformedXML, err))
		}

		full := string(token.Name.Full)
		switch {
		case full == "":
			continue

		case token.IsEndElement:
			if len(stack) == 0 {
				return nil, newError(KindFormat, fmt.Errorf("%w: unexpected end element </%s>", ErrMalformedXML, full))
			}
			top := stack[len(stack)-1]
			if top.qualified() != full {
				return nil, newError(KindFormat, fmt.Errorf("%w: </%s> closes <%s>", ErrMalformedXML, full, top.qualified()))
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				appendText(stack[len(stack)-1], token.Data)
			}

		default:
			node := &Node{Name: localName(full), fullName: full}
			for _, a := range token.Attrs {
				node.attrs = append(node.attrs, Attr{
					Name:  localName(string(a.Name.Full)),
					Value: html.UnescapeString(string(a.Value)),
				})
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, newError(KindFormat, fmt.Errorf("%w: multiple document elements", ErrMalformedXML))
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				node.parent = parent
				node.index = len(parent.children)
				parent.children = append(parent.children, node)
			}
			// Character data after <x/> belongs to the enclosing element.
			if !token.SelfClosing {
				stack = append(stack, node)
			}
			if len(stack) > 0 {
				appendText(stack[len(stack)-1], token.Data)
			}
		}
	}

	if root == nil {
		return nil, newError(KindFormat, fmt.Errorf("%w: no document element", ErrMalformedXML))
	}
	if len(stack) > 0 {
		return nil, newError(KindFormat, fmt.Errorf("%w: unclosed element <%s>", ErrMalformedXML, stack[len(stack)-1].qualified()))
	}

	doc := &Document{root: root}
	if err := doc.checkRoot(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) checkRoot() error {
	if d == nil || d.root == nil {
		return newError(KindFormat, fmt.Errorf("%w: empty document", ErrRootMismatch))
	}
	if d.root.Name != rootElement {
		return newError(KindFormat, fmt.Errorf("%w: root element <%s>", ErrRootMismatch, d.root.Name))
	}
	return nil
}

func (n *Node) qualified() string {
	if n.fullName != "" {
		return n.fullName
	}
	return n.Name
}

func localName(full string) string {
	if i := strings.IndexByte(full, ':'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// appendText adds entity decoded character data to n.
func appendText(n *Node, data []byte) {
	if len(data) > 0 {
		n.text.WriteString(html.UnescapeString(string(data)))
	}
}
