package importer

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// textTarget marks where loose text content should be appended while scanning.
type textTarget struct {
	node        *bookmarks.Node
	description bool
}

// ParseNetscape converts a Netscape bookmark export into a canonical document.
// The scan is a single left-to-right pass over the token stream driven by a
// stack of open folders; malformed or partial HTML never fails, unknown tags
// are ignored.
func ParseNetscape(htmlText, sourceLabel string) *bookmarks.Document {
	root := bookmarks.NewRoot()
	stack := []*bookmarks.Node{root}
	var pending *bookmarks.Node
	var target *textTarget

	top := func() *bookmarks.Node { return stack[len(stack)-1] }

	z := html.NewTokenizer(strings.NewReader(htmlText))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// EOF or tokenizer giving up on garbage. Either way the tree
			// built so far is the result.
			break
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "dl":
				// A list opening right after a heading attaches the pending
				// folder and descends into it.
				if pending != nil {
					top().Children = append(top().Children, pending)
					stack = append(stack, pending)
					pending = nil
				}
			case "dt":
				target = nil
			case "h1":
				// Some exports wrap the root folder name in an H1.
				target = &textTarget{node: root}
			case "h3":
				folder := &bookmarks.Node{
					Type:         bookmarks.NodeFolder,
					ID:           bookmarks.NewID(),
					Children:     []*bookmarks.Node{},
					AddDate:      attrVal(t, "add_date"),
					LastModified: attrVal(t, "last_modified"),
				}
				if attrVal(t, "personal_toolbar_folder") == "true" {
					folder.Tags = []string{"toolbar"}
				}
				pending = folder
				target = &textTarget{node: folder}
			case "a":
				bm := &bookmarks.Node{
					Type:         bookmarks.NodeBookmark,
					ID:           bookmarks.NewID(),
					URL:          attrVal(t, "href"),
					AddDate:      attrVal(t, "add_date"),
					LastModified: attrVal(t, "last_modified"),
					Icon:         firstNonEmpty(attrVal(t, "icon"), attrVal(t, "icon_uri")),
				}
				if tags := attrVal(t, "tags"); tags != "" {
					bm.Tags = splitTags(tags)
				}
				top().Children = append(top().Children, bm)
				target = &textTarget{node: bm}
			case "dd":
				// Description for the most recently appended entry.
				if kids := top().Children; len(kids) > 0 {
					target = &textTarget{node: kids[len(kids)-1], description: true}
				}
			default:
				target = nil
			}

		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "dl":
				if len(stack) > 1 {
					stack = stack[:len(stack)-1]
				}
			case "h1", "h3", "a", "dd":
				target = nil
			}

		case html.TextToken:
			text := strings.TrimSpace(string(z.Text()))
			if text == "" || target == nil {
				continue
			}
			if target.description {
				appendDescription(target.node, text)
			} else {
				appendName(target.node, text)
			}
		}
	}

	return bookmarks.NewDocument(root, sourceLabel)
}

func appendName(n *bookmarks.Node, text string) {
	n.Name = strings.TrimSpace(n.Name + " " + text)
}

func appendDescription(n *bookmarks.Node, text string) {
	if n.Description == "" {
		n.Description = text
		return
	}
	n.Description = n.Description + "\n" + text
}

func attrVal(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
