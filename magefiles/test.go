//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/aserto-dev/mage-loot/deps"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test namespace methods
// Note: Test type is defined in main.go

// cleanTestOutput removes all test output (for explicit cleanup)
func cleanTestOutput() error {
	if err := os.RemoveAll("test-output"); err != nil {
		fmt.Printf("Warning: failed to clean test output: %v\n", err)
		return err
	}
	fmt.Println("Test output directory cleaned")
	return nil
}

// Unit runs unit tests using gotestsum with parallel execution
func (Test) Unit() error {
	fmt.Println("Running unit tests with parallel execution...")
	return deps.GoDep(
		"gotestsum",
	)(
		"--format",
		"pkgname",
		"--",
		"-p", "4", // Run up to 4 packages in parallel
		"-parallel", "8", // Run up to 8 tests in parallel within each package
		"./pkg/...",
		"./internal/...",
		"./cmd/...",
	)
}

// UnitFast runs unit tests with -short flag and parallel execution
func (Test) UnitFast() error {
	fmt.Println("Running unit tests (fast mode)...")
	return deps.GoDep(
		"gotestsum",
	)(
		"--format",
		"pkgname",
		"--",
		"-short",
		"-p", "4",
		"-parallel", "8",
		"./pkg/...",
		"./internal/...",
		"./cmd/...",
	)
}

// UnitParallel runs unit tests with maximum parallel execution (for CI/powerful machines)
func (Test) UnitParallel() error {
	fmt.Println("Running unit tests with maximum parallel execution...")
	return deps.GoDep(
		"gotestsum",
	)(
		"--format",
		"pkgname",
		"--",
		"-p", "8",
		"-parallel", "16",
		"./pkg/...",
		"./internal/...",
		"./cmd/...",
	)
}

// UnitSingle runs unit tests with no parallelism (for debugging)
func (Test) UnitSingle() error {
	fmt.Println("Running unit tests sequentially (no parallelism)...")
	return deps.GoDep(
		"gotestsum",
	)(
		"--format",
		"pkgname",
		"--",
		"-p", "1",
		"-parallel", "1",
		"./pkg/...",
		"./internal/...",
		"./cmd/...",
	)
}

// Coverage runs tests with coverage and parallel execution
func (Test) Coverage() error {
	fmt.Println("Running tests with coverage...")
	return sh.RunV(
		"go",
		"test",
		"-coverprofile=coverage.out",
		"-p", "4",
		"-parallel", "8",
		"./pkg/...",
		"./internal/...",
		"./cmd/...",
	)
}

// CoverageHTML generates HTML coverage report
func (Test) CoverageHTML() error {
	mg.Deps(Test.Coverage)
	fmt.Println("Generating HTML coverage report...")
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// CleanTestOutput explicitly removes all test output files
func (Test) CleanTestOutput() error {
	return cleanTestOutput()
}

// GetCPUCores returns the number of available CPU cores
func GetCPUCores() int {
	return runtime.NumCPU()
}

// PrintCPUCores prints the number of available CPU cores
func PrintCPUCores() {
	numCores := GetCPUCores()
	fmt.Printf("Number of available CPU cores: %d\n", numCores)
}

// ParallelismConfig holds the parallelism configuration for tests
var ParallelismConfig = struct {
	Packages int // Number of packages to test in parallel
	Tests    int // Number of tests to run in parallel within each package
}{
	Packages: 4,
	Tests:    8,
}

func init() {
	numCores := GetCPUCores()
	if numCores > 4 {
		ParallelismConfig.Packages = numCores / 2
		ParallelismConfig.Tests = numCores * 2
	}
	fmt.Printf(
		"Parallelism configured: %d packages, %d tests per package\n",
		ParallelismConfig.Packages,
		ParallelismConfig.Tests,
	)
}

// UnitAuto automatically adjusts parallelism based on available CPU cores
func (Test) UnitAuto() error {
	cpuCount := runtime.NumCPU()
	packageParallel := cpuCount / 2
	if packageParallel < 1 {
		packageParallel = 1
	}
	testParallel := cpuCount

	fmt.Printf("Running unit tests with auto-detected parallelism (CPUs: %d, packages: %d, tests: %d)...\n",
		cpuCount, packageParallel, testParallel)

	return deps.GoDep(
		"gotestsum",
	)(
		"--format",
		"pkgname",
		"--",
		"-p", strconv.Itoa(packageParallel),
		"-parallel", strconv.Itoa(testParallel),
		"./pkg/...",
		"./internal/...",
		"./cmd/...",
	)
}
