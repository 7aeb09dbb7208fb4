package toml

import "strings"

// document builds the generic tree: tables are map[string]any, static arrays
// are []any and arrays of tables are []map[string]any
type document struct {
	s       *scanner
	root    map[string]any
	scope   map[string]any
	defined map[string]bool
}

// Parse reads a whole document into a generic map
func Parse(data []byte) (map[string]any, error) {
	root := make(map[string]any)
	d := &document{
		s:       newScanner(data),
		root:    root,
		scope:   root,
		defined: make(map[string]bool),
	}
	for {
		d.s.skipBlank()
		if d.s.eof() {
			return root, nil
		}
		var err error
		if d.s.peek() == '[' {
			err = d.header()
		} else {
			err = d.assignment(d.scope)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (d *document) header() error {
	s := d.s
	s.next()
	array := s.peek() == '['
	if array {
		s.next()
	}
	keys, err := s.key()
	if err != nil {
		return err
	}
	if err := s.expect(']'); err != nil {
		return err
	}
	if array {
		if err := s.expect(']'); err != nil {
			return err
		}
	}
	if err := s.endLine(); err != nil {
		return err
	}

	parent, err := d.walk(d.root, keys[:len(keys)-1])
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	path := strings.Join(keys, ".")

	if array {
		table := make(map[string]any)
		switch cur := parent[last].(type) {
		case nil:
			parent[last] = []map[string]any{table}
		case []map[string]any:
			parent[last] = append(cur, table)
		default:
			return s.errorf("%s is not an array of tables", path)
		}
		d.scope = table
		return nil
	}

	if d.defined[path] {
		return s.errorf("table %s defined twice", path)
	}
	d.defined[path] = true
	switch cur := parent[last].(type) {
	case nil:
		table := make(map[string]any)
		parent[last] = table
		d.scope = table
	case map[string]any:
		d.scope = cur
	default:
		return s.errorf("%s is already a value", path)
	}
	return nil
}

// walk descends through intermediate tables, creating them as needed;
// an array of tables resolves to its last element
func (d *document) walk(from map[string]any, keys []string) (map[string]any, error) {
	cur := from
	for _, k := range keys {
		switch next := cur[k].(type) {
		case nil:
			table := make(map[string]any)
			cur[k] = table
			cur = table
		case map[string]any:
			cur = next
		case []map[string]any:
			cur = next[len(next)-1]
		default:
			return nil, d.s.errorf("key %s is not a table", k)
		}
	}
	return cur, nil
}

func (d *document) assignment(scope map[string]any) error {
	if err := d.pair(scope); err != nil {
		return err
	}
	return d.s.endLine()
}

// pair reads key = value into scope
func (d *document) pair(scope map[string]any) error {
	s := d.s
	keys, err := s.key()
	if err != nil {
		return err
	}
	if err := s.expect('='); err != nil {
		return err
	}
	s.skipSpace()
	val, err := d.value()
	if err != nil {
		return err
	}
	target, err := d.walk(scope, keys[:len(keys)-1])
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if _, dup := target[last]; dup {
		return s.errorf("duplicate key %s", strings.Join(keys, "."))
	}
	target[last] = val
	return nil
}

func (d *document) value() (any, error) {
	s := d.s
	switch c := s.peek(); c {
	case '"':
		return s.basicString()
	case '\'':
		return s.literalString()
	case '[':
		return d.array()
	case '{':
		return d.inlineTable()
	case 't', 'f':
		switch w := s.word(); w {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, s.errorf("invalid value %q", w)
		}
	default:
		return s.number()
	}
}

func (d *document) array() ([]any, error) {
	s := d.s
	s.next()
	out := []any{}
	for {
		s.skipBlank()
		if s.peek() == ']' {
			s.next()
			return out, nil
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		s.skipBlank()
		switch c := s.peek(); c {
		case ',':
			s.next()
		case ']':
		default:
			return nil, s.errorf("expected ',' or ']' in array, found %s", describe(c))
		}
	}
}

func (d *document) inlineTable() (map[string]any, error) {
	s := d.s
	s.next()
	table := make(map[string]any)
	s.skipSpace()
	if s.peek() == '}' {
		s.next()
		return table, nil
	}
	for {
		if err := d.pair(table); err != nil {
			return nil, err
		}
		s.skipSpace()
		switch c := s.next(); c {
		case ',':
			s.skipSpace()
		case '}':
			return table, nil
		default:
			return nil, s.errorf("expected ',' or '}' in inline table, found %s", describe(c))
		}
	}
}
