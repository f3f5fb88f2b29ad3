package diagram

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/cloudgraph/pkg/errors"
)

// FlowDirection is the axis along which a container lays out its direct members.
type FlowDirection string

const (
	FlowHorizontal FlowDirection = "horizontal"
	FlowVertical   FlowDirection = "vertical"
)

// Valid reports whether f is empty or a known flow direction.
func (f FlowDirection) Valid() bool { return f == "" || f == FlowHorizontal || f == FlowVertical }

// ContainerLayout holds per-container layout hints. Zero fields fall back to
// the diagram-wide LayoutOptions.
type ContainerLayout struct {
	Direction FlowDirection
	Spacing   float64
	Alignment Alignment
}

// Container is a named, nestable group of nodes. Containers are used only for
// visual grouping and bounding-box computation.
//
// Membership and parentage are read-only from outside the package; use
// Diagram.ReparentNode and Diagram.ReparentContainer to change them.
type Container struct {
	ID     string
	Name   string
	Meta   Metadata
	Style  string // Optional rendering-style tag (e.g. "cluster", "group")
	Layout ContainerLayout

	members  []string
	children []string
	parent   string
}

// Members returns the ids of the direct member nodes in insertion order.
func (c *Container) Members() []string { return slices.Clone(c.members) }

// Children returns the ids of the direct child containers in insertion order.
func (c *Container) Children() []string { return slices.Clone(c.children) }

// Parent returns the parent container id, or "" for a root container.
func (c *Container) Parent() string { return c.parent }

// HasMember reports whether the node is a direct member of the container.
func (c *Container) HasMember(nodeID string) bool { return slices.Contains(c.members, nodeID) }

// IsEmpty reports whether the container has neither members nor children.
func (c *Container) IsEmpty() bool { return len(c.members) == 0 && len(c.children) == 0 }

func (c *Container) removeMember(nodeID string) {
	c.members = slices.DeleteFunc(c.members, func(s string) bool { return s == nodeID })
}

func (c *Container) removeChild(id string) {
	c.children = slices.DeleteFunc(c.children, func(s string) bool { return s == id })
}

// ContainerOption configures a container at creation time.
type ContainerOption func(*Container)

// WithContainerID sets an explicit container id instead of a generated one.
func WithContainerID(id string) ContainerOption {
	return func(c *Container) { c.ID = id }
}

// WithContainerMeta attaches metadata to the container.
func WithContainerMeta(meta Metadata) ContainerOption {
	return func(c *Container) { c.Meta = meta }
}

// WithContainerLayout sets the container's layout hints.
func WithContainerLayout(l ContainerLayout) ContainerOption {
	return func(c *Container) { c.Layout = l }
}

// WithContainerStyle sets the container's rendering-style tag.
func WithContainerStyle(style string) ContainerOption {
	return func(c *Container) { c.Style = style }
}

// CreateContainer creates a container named name under parentID ("" for a
// root container) and returns it.
//
// Returns INVALID_INPUT for an empty name or malformed id, UNKNOWN_CONTAINER
// if parentID does not exist, or DUPLICATE_ID if an explicit id is taken.
func (d *Diagram) CreateContainer(name, parentID string, opts ...ContainerOption) (*Container, error) {
	c := &Container{Name: name}
	for _, opt := range opts {
		opt(c)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := errors.ValidateID("container", c.ID); err != nil {
		return nil, err
	}
	if err := errors.ValidateName("container", name); err != nil {
		return nil, err
	}
	if _, exists := d.containers[c.ID]; exists {
		return nil, errors.New(errors.ErrCodeDuplicateID, "container %q already exists", c.ID)
	}
	if parentID != "" {
		if _, ok := d.containers[parentID]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownContainer, "parent container %q not found", parentID)
		}
	}
	if c.Meta == nil {
		c.Meta = Metadata{}
	}

	d.containers[c.ID] = c
	d.containerOrder = append(d.containerOrder, c.ID)
	if parentID != "" {
		c.parent = parentID
		p := d.containers[parentID]
		p.children = append(p.children, c.ID)
	}
	return c, nil
}

// RemoveContainer deletes a container. Its direct members and child
// containers are lifted to the removed container's parent (or to the top
// level). Returns UNKNOWN_CONTAINER if the container does not exist.
func (d *Diagram) RemoveContainer(id string) error {
	c, ok := d.containers[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownContainer, "container %q not found", id)
	}

	var parent *Container
	if c.parent != "" {
		parent = d.containers[c.parent]
		parent.removeChild(id)
	}

	for _, nodeID := range c.members {
		d.nodes[nodeID].container = c.parent
		if parent != nil {
			parent.members = append(parent.members, nodeID)
		}
	}
	for _, childID := range c.children {
		d.containers[childID].parent = c.parent
		if parent != nil {
			parent.children = append(parent.children, childID)
		}
	}

	delete(d.containers, id)
	d.containerOrder = slices.DeleteFunc(d.containerOrder, func(s string) bool { return s == id })
	return nil
}

// ReparentNode moves a node into containerID, removing it from its previous
// container if any. An empty containerID detaches the node to the top level.
//
// Both sides of the membership relation are updated together, after every
// check has passed. Returns UNKNOWN_NODE or UNKNOWN_CONTAINER.
func (d *Diagram) ReparentNode(nodeID, containerID string) error {
	n, ok := d.nodes[nodeID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %q not found", nodeID)
	}
	var target *Container
	if containerID != "" {
		if target, ok = d.containers[containerID]; !ok {
			return errors.New(errors.ErrCodeUnknownContainer, "container %q not found", containerID)
		}
	}
	if n.container == containerID {
		return nil
	}

	if n.container != "" {
		d.containers[n.container].removeMember(nodeID)
	}
	n.container = containerID
	if target != nil {
		target.members = append(target.members, nodeID)
	}
	return nil
}

// ReparentContainer moves a container under newParentID. An empty
// newParentID makes it a root container.
//
// Returns UNKNOWN_CONTAINER if either id is unknown, or CYCLIC_CONTAINMENT if
// newParentID is the container itself or one of its descendants. The forest
// is not modified when an error is returned.
func (d *Diagram) ReparentContainer(containerID, newParentID string) error {
	c, ok := d.containers[containerID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownContainer, "container %q not found", containerID)
	}
	var target *Container
	if newParentID != "" {
		if target, ok = d.containers[newParentID]; !ok {
			return errors.New(errors.ErrCodeUnknownContainer, "parent container %q not found", newParentID)
		}
		if d.isAncestorOrSelf(containerID, newParentID) {
			return errors.New(errors.ErrCodeCyclicContainment,
				"cannot move container %q under its own descendant %q", containerID, newParentID)
		}
	}
	if c.parent == newParentID {
		return nil
	}

	if c.parent != "" {
		d.containers[c.parent].removeChild(containerID)
	}
	c.parent = newParentID
	if target != nil {
		target.children = append(target.children, containerID)
	}
	return nil
}

// isAncestorOrSelf reports whether ancestor is id or lies on id's parent chain.
func (d *Diagram) isAncestorOrSelf(ancestor, id string) bool {
	for cur := id; cur != ""; cur = d.containers[cur].parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Container returns the container with the given id.
func (d *Diagram) Container(id string) (*Container, bool) {
	c, ok := d.containers[id]
	return c, ok
}

// Containers returns all containers in creation order.
func (d *Diagram) Containers() []*Container {
	out := make([]*Container, len(d.containerOrder))
	for i, id := range d.containerOrder {
		out[i] = d.containers[id]
	}
	return out
}

// ContainerCount returns the number of containers in the diagram.
func (d *Diagram) ContainerCount() int { return len(d.containers) }

// RootContainers returns containers without a parent, in creation order.
func (d *Diagram) RootContainers() []*Container {
	var out []*Container
	for _, id := range d.containerOrder {
		if c := d.containers[id]; c.parent == "" {
			out = append(out, c)
		}
	}
	return out
}

// TopLevelNodes returns nodes that are not a member of any container, in
// insertion order.
func (d *Diagram) TopLevelNodes() []*Node {
	var out []*Node
	for _, id := range d.nodeOrder {
		if n := d.nodes[id]; n.container == "" {
			out = append(out, n)
		}
	}
	return out
}

// ContainerDepth returns the nesting depth of a container (0 for roots), or
// -1 if the container does not exist.
func (d *Diagram) ContainerDepth(id string) int {
	c, ok := d.containers[id]
	if !ok {
		return -1
	}
	depth := 0
	for c.parent != "" {
		c = d.containers[c.parent]
		depth++
	}
	return depth
}

// Descendants returns the ids of every container nested below id, depth
// first in child order. Returns nil for unknown ids.
func (d *Diagram) Descendants(id string) []string {
	c, ok := d.containers[id]
	if !ok {
		return nil
	}
	var out []string
	for _, child := range c.children {
		out = append(out, child)
		out = append(out, d.Descendants(child)...)
	}
	return out
}

// AllMembers returns the ids of every node contained by id directly or
// through nested containers.
func (d *Diagram) AllMembers(id string) []string {
	c, ok := d.containers[id]
	if !ok {
		return nil
	}
	out := slices.Clone(c.members)
	for _, child := range c.children {
		out = append(out, d.AllMembers(child)...)
	}
	return out
}

// PostOrder returns every container id ordered so that each container comes
// after all of its descendants. Roots are visited in creation order.
func (d *Diagram) PostOrder() []string {
	out := make([]string, 0, len(d.containers))
	var visit func(id string)
	visit = func(id string) {
		for _, child := range d.containers[id].children {
			visit(child)
		}
		out = append(out, id)
	}
	for _, root := range d.RootContainers() {
		visit(root.ID)
	}
	return out
}
