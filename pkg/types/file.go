// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the swcompare engine:
// extracted binary features, scorer outputs, manipulation verdicts, the
// final comparison result, and configuration.
package types

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileKind selects the comparison path for a file pair.
type FileKind string

const (
	KindSolidWorks FileKind = "solidworks"
	KindGeneral    FileKind = "general"
	KindUnknown    FileKind = "unknown"
)

// FileTypeGroup names an extension allow-list used when enumerating a folder.
type FileTypeGroup string

const (
	GroupSolidWorks FileTypeGroup = "solidworks"
	GroupCAD        FileTypeGroup = "cad"
	GroupDocument   FileTypeGroup = "document"
	GroupImage      FileTypeGroup = "image"
	GroupAll        FileTypeGroup = "all"
)

// SolidWorksExtensions lists the extensions routed to the structured scorer.
var SolidWorksExtensions = []string{".sldprt", ".sldasm", ".slddrw"}

var groupExtensions = map[FileTypeGroup][]string{
	GroupSolidWorks: SolidWorksExtensions,
	GroupCAD:        {".step", ".stp", ".iges", ".igs", ".stl", ".obj", ".dxf"},
	GroupDocument:   {".docx", ".xlsx", ".pdf", ".txt"},
	GroupImage:      {".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"},
}

// Extensions returns the lower-case extensions accepted by the group.
// GroupAll returns the union of every other group.
func (g FileTypeGroup) Extensions() ([]string, error) {
	if g == GroupAll || g == "" {
		var all []string
		for _, grp := range []FileTypeGroup{GroupSolidWorks, GroupCAD, GroupDocument, GroupImage} {
			all = append(all, groupExtensions[grp]...)
		}
		return all, nil
	}
	exts, ok := groupExtensions[g]
	if !ok {
		return nil, fmt.Errorf("unknown file type group %q: use solidworks, cad, document, image, or all", g)
	}
	return exts, nil
}

// Accepts reports whether path has an extension in the group's allow-list.
func (g FileTypeGroup) Accepts(path string) bool {
	exts, err := g.Extensions()
	if err != nil {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// FileInfo holds the filesystem metadata shown next to a comparison.
type FileInfo struct {
	Name    string    `json:"name" yaml:"name"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// String renders the info as a short multi-line summary.
func (fi FileInfo) String() string {
	return fmt.Sprintf("%s\n  size:     %s\n  modified: %s",
		fi.Name, FormatSize(fi.Size), fi.ModTime.Local().Format(time.DateTime))
}

// FormatSize renders a byte count with two decimals in B, KB, MB, GB, or TB.
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}
