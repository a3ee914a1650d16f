// Package template holds the static configuration tree copied into every
// environment and the edits made to it after copying.
package template

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/pkg/errors"
)

// IgnoreFileName lists paths of a custom template tree that are not copied.
const IgnoreFileName = ".airlocalignore"

//go:embed all:config
var configFS embed.FS

const (
	WebRootDir = "wordpress"
	ConfigDir  = "config"
)

// Materialize creates envPath and copies the configuration tree into it.
// envPath itself is created exclusively so two runs cannot share it. An empty
// source selects the built-in tree.
func Materialize(envPath, source string) error {
	if err := os.MkdirAll(filepath.Dir(envPath), 0755); err != nil {
		return errors.Wrap(err, "create sites directory")
	}
	if err := os.Mkdir(envPath, 0755); err != nil {
		return errors.Wrap(err, "create environment directory")
	}
	if err := os.Mkdir(filepath.Join(envPath, WebRootDir), 0755); err != nil {
		return errors.Wrap(err, "create web root")
	}

	dest := filepath.Join(envPath, ConfigDir)
	if source == "" {
		sub, err := fs.Sub(configFS, ConfigDir)
		if err != nil {
			return err
		}
		return copyTree(sub, dest, gitignore.DummyIgnoreMatcher(false), "")
	}

	ignore, err := loadIgnore(source)
	if err != nil {
		return err
	}
	return copyTree(os.DirFS(source), dest, ignore, source)
}

func loadIgnore(source string) (gitignore.IgnoreMatcher, error) {
	ignorePath := filepath.Join(source, IgnoreFileName)
	if _, err := os.Stat(ignorePath); os.IsNotExist(err) {
		return gitignore.DummyIgnoreMatcher(false), nil
	}
	ignore, err := gitignore.NewGitIgnore(ignorePath, source)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", ignorePath)
	}
	return ignore, nil
}

func copyTree(fsys fs.FS, dest string, ignore gitignore.IgnoreMatcher, base string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == IgnoreFileName {
			return nil
		}
		if p != "." && base != "" && ignore.Match(filepath.Join(base, filepath.FromSlash(p)), d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(dest, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(fsys, p, target)
	})
}

func copyFile(fsys fs.FS, name, target string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "copy %s", path.Base(name))
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrapf(err, "copy %s", path.Base(name))
	}
	return dst.Close()
}
