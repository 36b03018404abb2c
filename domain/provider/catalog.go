package provider

import (
	"fmt"

	"github.com/toolmesh/multitool/domain/tool"
)

// Catalog is the static, ordered set of tools a provider exposes. It is
// built once at provider start and read-only thereafter, so it is safely
// shared by arbitrarily many concurrent invocations without locking.
type Catalog struct {
	tools []tool.Tool
	index map[string]int
}

// NewCatalog builds a catalog in declaration order. Tool names must be
// unique and non-empty; a violation is a provider-initialization defect.
func NewCatalog(tools ...tool.Tool) (*Catalog, error) {
	c := &Catalog{
		tools: make([]tool.Tool, len(tools)),
		index: make(map[string]int, len(tools)),
	}
	copy(c.tools, tools)

	for i, t := range c.tools {
		if t.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: %w", i, ErrEmptyToolName)
		}
		if _, exists := c.index[t.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name)
		}
		c.index[t.Name] = i
	}
	return c, nil
}

// MustCatalog builds a catalog or panics. Intended for the static,
// build-time tool sets of concrete providers.
func MustCatalog(tools ...tool.Tool) *Catalog {
	c, err := NewCatalog(tools...)
	if err != nil {
		panic(err)
	}
	return c
}

// Tools returns the catalog in declaration order. The returned slice is a
// copy; mutating it does not affect the catalog.
func (c *Catalog) Tools() []tool.Tool {
	tools := make([]tool.Tool, len(c.tools))
	copy(tools, c.tools)
	return tools
}

// Get returns a tool descriptor by name.
func (c *Catalog) Get(name string) (tool.Tool, bool) {
	i, ok := c.index[name]
	if !ok {
		return tool.Tool{}, false
	}
	return c.tools[i], true
}

// Has reports whether the catalog contains the named tool.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Names returns the tool names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.tools))
	for i, t := range c.tools {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int {
	return len(c.tools)
}
