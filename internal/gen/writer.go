package gen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ArtifactPair names the two generated units. They are always produced
// together by Generator.Generate.
type ArtifactPair struct {
	DeclarationPath string
	DefinitionPath  string
}

// pendingFile is a temporary sibling of an output path.
type pendingFile struct {
	target string
	file   *os.File
}

func createPending(target string) (*pendingFile, error) {
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file for %s: %w", target, err)
	}

	return &pendingFile{target: target, file: f}, nil
}

// write streams fn's output into the temporary file and closes it.
func (p *pendingFile) write(fn func(io.Writer) error) error {
	w := bufio.NewWriterSize(p.file, 64<<10)

	if err := fn(w); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", p.target, err)
	}

	if err := p.file.Chmod(filePerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", p.target, err)
	}

	if err := p.file.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", p.target, err)
	}

	return nil
}

func (p *pendingFile) discard() {
	_ = p.file.Close()
	_ = os.Remove(p.file.Name())
}

// writePair writes both units to temporary files and renames them into
// place once both are complete. If either writer fails, both temporaries
// are removed and the existing outputs are left as they were.
func writePair(pair ArtifactPair, writeDecl, writeDef func(io.Writer) error) (err error) {
	decl, err := createPending(pair.DeclarationPath)
	if err != nil {
		return err
	}

	def, err := createPending(pair.DefinitionPath)
	if err != nil {
		decl.discard()
		return err
	}

	defer func() {
		if err != nil {
			decl.discard()
			def.discard()
		}
	}()

	if err := decl.write(writeDecl); err != nil {
		return fmt.Errorf("generating %s: %w", pair.DeclarationPath, err)
	}

	if err := def.write(writeDef); err != nil {
		return fmt.Errorf("generating %s: %w", pair.DefinitionPath, err)
	}

	if err := errors.Join(decl.file.Close(), def.file.Close()); err != nil {
		return fmt.Errorf("closing temporary files: %w", err)
	}

	if err := os.Rename(decl.file.Name(), decl.target); err != nil {
		return fmt.Errorf("replacing %s: %w", decl.target, err)
	}

	if err := os.Rename(def.file.Name(), def.target); err != nil {
		return fmt.Errorf("replacing %s: %w", def.target, err)
	}

	return nil
}
