package bookmarks

import (
	"time"

	"github.com/google/uuid"
)

// Generator is the tag stamped into every document this service produces.
const Generator = "bookmarkd"

// RootName is the synthetic root folder name used for fresh imports.
const RootName = "All bookmarks"

// NodeType discriminates the two tree node variants.
type NodeType string

const (
	NodeFolder   NodeType = "folder"
	NodeBookmark NodeType = "bookmark"
)

// Node is one entry of the canonical bookmark tree.
// Folders carry Children; bookmarks carry URL. IDs are unique across a
// document and survive clones (parent relationships are positional only).
type Node struct {
	Type NodeType `json:"type"`
	ID   string   `json:"id"`
	Name string   `json:"name"`

	// Bookmark fields
	URL  string `json:"url,omitempty"`
	Icon string `json:"icon,omitempty"`

	// Folder fields
	Children []*Node `json:"children,omitempty"`

	// Shared optional metadata. Timestamps are opaque strings carried over
	// from the source export, never reparsed.
	AddDate      string   `json:"add_date,omitempty"`
	LastModified string   `json:"last_modified,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool { return n != nil && n.Type == NodeFolder }

// Statistics are derived counts over a document tree.
// TotalFolders excludes the synthetic root itself.
type Statistics struct {
	TotalFolders   int `json:"total_folders"`
	TotalBookmarks int `json:"total_bookmarks"`
}

// Metadata carries free-form display configuration, independent of the tree.
type Metadata struct {
	SiteTitle    string `json:"siteTitle,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// Document is the full canonical bookmark tree plus provenance and statistics.
type Document struct {
	Version     int        `json:"version"`
	GeneratedAt string     `json:"generated_at"`
	Source      string     `json:"source"`
	Generator   string     `json:"generator"`
	Statistics  Statistics `json:"statistics"`
	Root        *Node      `json:"root"`
	Metadata    *Metadata  `json:"metadata,omitempty"`
}

// NewID mints a fresh opaque node identifier.
func NewID() string {
	return uuid.New().String()
}

// NewRoot creates an empty synthetic root folder.
func NewRoot() *Node {
	return &Node{
		Type:     NodeFolder,
		ID:       NewID(),
		Name:     RootName,
		Children: []*Node{},
	}
}

// NewDocument wraps a finished tree into a stamped document.
func NewDocument(root *Node, source string) *Document {
	return &Document{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Generator:   Generator,
		Statistics:  CalculateStatistics(root),
		Root:        root,
	}
}

// Restamp recomputes statistics and the generation timestamp after a batch of
// structural edits. Mutators never do this themselves so callers can batch.
func Restamp(doc *Document) *Document {
	out := *doc
	out.Statistics = CalculateStatistics(doc.Root)
	out.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return &out
}

// CloneNode returns a deep structural copy of a subtree. Child and tag slices
// are fresh at every level but node IDs are preserved, so the clone stays
// joinable against the original by id.
func CloneNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Tags != nil {
		out.Tags = append([]string(nil), n.Tags...)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = CloneNode(child)
		}
	}
	return &out
}
