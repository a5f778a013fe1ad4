//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const binaryName = "gulag"

var shaderSources = []string{
	filepath.Join("testbed", "shaders", "quad.vert"),
	filepath.Join("testbed", "shaders", "quad.frag"),
}

type Build mg.Namespace

// Validates the GLSL sources with glslangValidator.
func (Build) Shaders() error {
	for _, src := range shaderSources {
		if _, err := executeCmd("glslangValidator", withArgs(src), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Validates the shaders and builds the harness binary.
func (Build) Binary() error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", binaryName), "."), withStream())
	return err
}
