package templatize

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Well-known part names of a DOCX package
const (
	DocumentPartName         = "word/document.xml"
	ContentTypesPartName     = "[Content_Types].xml"
	CustomPropertiesPartName = "docProps/custom.xml"
)

// Package is the set of parts of a DOCX archive, keyed by part name.
// Order records the member order of the source archive and is the order
// used when the package is written back.
type Package struct {
	parts map[string][]byte
	order []string
}

// NewPackage creates an empty package
func NewPackage() *Package {
	return &Package{parts: make(map[string][]byte)}
}

// Clone returns a copy of the package that can be edited without affecting
// p. Part contents are shared, since Set always replaces them whole.
func (p *Package) Clone() *Package {
	c := &Package{
		parts: make(map[string][]byte, len(p.parts)),
		order: append([]string(nil), p.order...),
	}
	for name, content := range p.parts {
		c.parts[name] = content
	}
	return c
}

// ReadPackage reads every member of a zip archive into memory
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pkg := NewPackage()
	for _, file := range zipReader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		pkg.Set(file.Name, content)
	}

	return pkg, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", file.Name, err)
	}
	return content, nil
}

// ReadPackageFile reads a package from a file path. A missing file is
// reported as a DocumentError wrapping ErrInputNotFound.
func ReadPackageFile(path string) (*Package, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewDocumentError("read", path, ErrInputNotFound)
		}
		return nil, NewDocumentError("read", path, err)
	}

	pkg, err := ReadPackage(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	return pkg, nil
}

// Get returns the content of a part
func (p *Package) Get(name string) ([]byte, bool) {
	content, ok := p.parts[name]
	return content, ok
}

// Has reports whether the package contains a part
func (p *Package) Has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// Set stores a part. New parts are appended to the member order; replacing
// an existing part keeps its position.
func (p *Package) Set(name string, content []byte) {
	if _, exists := p.parts[name]; !exists {
		p.order = append(p.order, name)
	}
	p.parts[name] = content
}

// Delete removes a part and reports whether it was present
func (p *Package) Delete(name string) bool {
	if _, ok := p.parts[name]; !ok {
		return false
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the part names in member order
func (p *Package) Names() []string {
	return append([]string(nil), p.order...)
}

// Len returns the number of parts
func (p *Package) Len() int {
	return len(p.order)
}

// Write writes the package as a zip archive in member order
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, name := range p.order {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		if strings.HasSuffix(name, "/") {
			header.Method = zip.Store
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

// Bytes returns the package as zip archive bytes
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the package to path, creating parent directories as needed.
// The archive is assembled in memory first so a failure leaves no partial file.
func (p *Package) WriteFile(path string) error {
	content, err := p.Bytes()
	if err != nil {
		return NewDocumentError("write", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewDocumentError("write", path, err)
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return NewDocumentError("write", path, err)
	}
	return nil
}
