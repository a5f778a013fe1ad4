//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs the harness window.
func (Run) Harness() error {
	mg.Deps(Build.Shaders)
	fmt.Println("Run harness...")
	_, err := executeCmd("go", withArgs("run", "."), withStream())
	return err
}
