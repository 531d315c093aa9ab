package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dataroom/backend/internal/cli/api"
)

// JSON prints v as indented JSON to stdout.
func JSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Listing prints folders and files the way the dashboard orders them:
// folders first, then files.
func Listing(l api.Listing) {
	if len(l.Folders) == 0 && len(l.Files) == 0 {
		fmt.Println("Nothing here.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tSTARRED\tUPLOADED")

	for _, f := range l.Folders {
		fmt.Fprintf(w, "%s/\tdir\t-\t%s\n", f.Name, RelativeTime(f.CreatedAt))
	}
	for _, f := range l.Files {
		starred := "-"
		if f.Starred {
			starred = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, shortMIME(f.MimeType), starred, RelativeTime(f.UploadedAt))
	}
	w.Flush()
}

// Tree prints the folder hierarchy with two-space indentation per level.
func Tree(nodes []*api.TreeNode) {
	if len(nodes) == 0 {
		fmt.Println("No folders found.")
		return
	}
	printTree(nodes, 0)
}

func printTree(nodes []*api.TreeNode, depth int) {
	for _, node := range nodes {
		fmt.Printf("%s%s/\n", strings.Repeat("  ", depth), node.Name)
		printTree(node.Children, depth+1)
	}
}

// Breadcrumb prints a trail as "All files > … > Leaf", with the collapsed
// middle shown as an ellipsis.
func Breadcrumb(p api.Path) {
	segments := make([]string, 0, len(p.Path)+1)
	for i, crumb := range p.Path {
		if i == 1 && len(p.Ellipsis) > 0 {
			segments = append(segments, "…")
		}
		segments = append(segments, crumb.Name)
	}
	fmt.Println(strings.Join(segments, " > "))
}

// UserInfo prints user details.
func UserInfo(u api.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "Name:\t%s\n", u.Name)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	w.Flush()
}

// BulkDeleteReport prints the per-item outcome of a bulk delete.
func BulkDeleteReport(report api.BulkDeleteReport) {
	fmt.Printf("Deleted %d item(s), %d failed.\n", report.Deleted, report.Failed)
	for _, result := range report.Results {
		if result.Deleted {
			continue
		}
		fmt.Printf("  failed %s %s: %s\n", result.Type, result.ID, result.Error)
	}
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

func shortMIME(mime string) string {
	// "application/pdf" -> "pdf", "image/png" -> "png"
	parts := strings.Split(mime, "/")
	if len(parts) == 2 {
		s := parts[1]
		if idx := strings.LastIndex(s, "."); idx >= 0 {
			s = s[idx+1:]
		}
		return s
	}
	return mime
}
