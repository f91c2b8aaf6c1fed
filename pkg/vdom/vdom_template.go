// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wavetermdev/htmltoken"
	"github.com/wavetermdev/reactshim/pkg/keycase"
)

// attribute values of the form "#bind:name" are replaced by data["name"]
const BindAttrPrefix = "#bind:"

var ErrTemplate = errors.New("invalid template")

// TemplateNode is parsed markup that has not been handed to a factory yet.
// Children are strings, *TemplateNode values or values bound from data.
type TemplateNode struct {
	Ref      Ref
	Props    map[string]any
	Children []any
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// IsVoidTag reports html elements that never have children or an end tag
func IsVoidTag(tag string) bool {
	return voidTags[tag]
}

var attrPropNames = map[string]string{
	"class":     "className",
	"for":       "htmlFor",
	"tabindex":  "tabIndex",
	"readonly":  "readOnly",
	"maxlength": "maxLength",
}

var dashToCamel = keycase.WithDelimiter("-")

// max-width and max_width both become maxWidth, data-* and aria-* are kept
func attrToPropName(key string) string {
	if propName, ok := attrPropNames[key]; ok {
		return propName
	}
	if strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "aria-") {
		return key
	}
	return keycase.ToCamelCase(dashToCamel(key))
}

// bare attributes (<Typography gutter-bottom>) are true, {json} values are
// decoded, use {""} for an explicit empty string.  keep is false when a
// "#bind:" key has no data.
func attrToPropVal(attr htmltoken.Attribute, data map[string]any) (val any, keep bool, err error) {
	val = attr.Val
	if attr.IsJson {
		var jsonVal any
		if err := json.Unmarshal([]byte(attr.Val), &jsonVal); err != nil {
			return nil, false, fmt.Errorf("%w: attribute %q: bad json value: %v", ErrTemplate, attr.Key, err)
		}
		val = jsonVal
	}
	strVal, isStr := val.(string)
	if !isStr {
		return val, true, nil
	}
	if bindKey, found := strings.CutPrefix(strVal, BindAttrPrefix); found {
		bindVal, ok := data[bindKey]
		return bindVal, ok, nil
	}
	if strVal == "" && !attr.IsJson {
		return true, true, nil
	}
	return strVal, true, nil
}

func makeTemplateNode(token htmltoken.Token, data map[string]any) (*TemplateNode, error) {
	node := &TemplateNode{Ref: Tag(token.Data)}
	for _, attr := range token.Attr {
		if attr.Key == "" {
			continue
		}
		val, keep, err := attrToPropVal(attr, data)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		if node.Props == nil {
			node.Props = make(map[string]any)
		}
		node.Props[attrToPropName(attr.Key)] = val
	}
	return node, nil
}

func trimIndent(s string, fromLeft bool) string {
	var ws string
	if fromLeft {
		ws = s[:len(s)-len(strings.TrimLeft(s, " \t\r\n"))]
	} else {
		ws = s[len(strings.TrimRight(s, " \t\r\n")):]
	}
	if !strings.ContainsAny(ws, "\r\n") {
		return s
	}
	if fromLeft {
		return s[len(ws):]
	}
	return s[:len(s)-len(ws)]
}

// whitespace that contains a line break is indentation and is dropped,
// inline spacing ("Copyright © <Link>") is kept
func cleanText(s string) string {
	if strings.TrimSpace(s) == "" {
		if strings.ContainsAny(s, "\r\n") {
			return ""
		}
		return " "
	}
	return trimIndent(trimIndent(s, true), false)
}

type templateParser struct {
	data  map[string]any
	stack []*TemplateNode
}

func (p *templateParser) cur() *TemplateNode {
	return p.stack[len(p.stack)-1]
}

func (p *templateParser) addChild(child any) {
	cur := p.cur()
	cur.Children = append(cur.Children, child)
}

func (p *templateParser) handleToken(tokenType htmltoken.TokenType, token htmltoken.Token) error {
	switch tokenType {
	case htmltoken.StartTagToken, htmltoken.SelfClosingTagToken:
		if token.Data == BindTag {
			if tokenType != htmltoken.SelfClosingTagToken {
				return fmt.Errorf("%w: <%s> must be self closing", ErrTemplate, BindTag)
			}
			bindVal, ok := p.data[getAttr(token, KeyPropKey)]
			if ok && bindVal != nil {
				p.addChild(bindVal)
			}
			return nil
		}
		node, err := makeTemplateNode(token, p.data)
		if err != nil {
			return err
		}
		p.addChild(node)
		if tokenType == htmltoken.StartTagToken && !IsVoidTag(token.Data) {
			p.stack = append(p.stack, node)
		}
	case htmltoken.EndTagToken:
		if IsVoidTag(token.Data) {
			return nil
		}
		if len(p.stack) <= 1 {
			return fmt.Errorf("%w: end tag </%s> without start tag", ErrTemplate, token.Data)
		}
		openTag := p.cur().Ref.RefName()
		if openTag != token.Data {
			return fmt.Errorf("%w: end tag </%s> does not match <%s>", ErrTemplate, token.Data, openTag)
		}
		p.stack = p.stack[:len(p.stack)-1]
	case htmltoken.TextToken:
		if text := cleanText(token.Data); text != "" {
			p.addChild(text)
		}
	case htmltoken.DoctypeToken:
		return fmt.Errorf("%w: doctype not supported", ErrTemplate)
	}
	return nil
}

func getAttr(token htmltoken.Token, key string) string {
	for _, attr := range token.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// ParseTemplate parses markup into a TemplateNode tree.  lowercase tags are
// html tags, capitalized tags name registered components.  several top-level
// nodes are returned under a #fragment, an empty template returns nil.
func ParseTemplate(htmlStr string, data map[string]any) (*TemplateNode, error) {
	root := &TemplateNode{Ref: Tag(FragmentTag)}
	parser := &templateParser{data: data, stack: []*TemplateNode{root}}
	tokenizer := htmltoken.NewTokenizer(strings.NewReader(htmlStr))
	for {
		tokenType := tokenizer.Next()
		if tokenType == htmltoken.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrTemplate, tokenizer.Err())
		}
		err := parser.handleToken(tokenType, tokenizer.Token())
		if err != nil {
			return nil, err
		}
	}
	if len(parser.stack) > 1 {
		return nil, fmt.Errorf("%w: unclosed tag <%s>", ErrTemplate, parser.cur().Ref.RefName())
	}
	switch len(root.Children) {
	case 0:
		return nil, nil
	case 1:
		if node, ok := root.Children[0].(*TemplateNode); ok {
			return node, nil
		}
	}
	return root, nil
}

// BuildChildren builds the nested template nodes, other children pass through
func (n *TemplateNode) BuildChildren(factory Factory) ([]any, error) {
	rtn := make([]any, 0, len(n.Children))
	for _, child := range n.Children {
		childNode, ok := child.(*TemplateNode)
		if !ok {
			rtn = append(rtn, child)
			continue
		}
		elem, err := childNode.Build(factory)
		if err != nil {
			return nil, err
		}
		rtn = append(rtn, elem)
	}
	return rtn, nil
}

// Build creates the node tree bottom-up through factory.  factory errors are
// returned unchanged.
func (n *TemplateNode) Build(factory Factory) (*Elem, error) {
	if n == nil {
		return nil, nil
	}
	children, err := n.BuildChildren(factory)
	if err != nil {
		return nil, err
	}
	return factory(n.Ref, n.Props, children...)
}

// ParseBind parses htmlStr and builds it with the registry as factory
func (r *Registry) ParseBind(htmlStr string, data map[string]any) (*Elem, error) {
	tmpl, err := ParseTemplate(htmlStr, data)
	if err != nil {
		return nil, err
	}
	return tmpl.Build(r.CreateElement)
}

// Bind is ParseBind for use inside render funcs: an error is rendered as a
// text node instead of being returned.
func (r *Registry) Bind(htmlStr string, data map[string]any) *Elem {
	elem, err := r.ParseBind(htmlStr, data)
	if err != nil {
		errElem := TextElem(err.Error())
		return &errElem
	}
	return elem
}
