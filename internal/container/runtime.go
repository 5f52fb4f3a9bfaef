// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a container runtime and runs one-shot tool
// containers (pandoc) with piped stdin and stdout.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Mount is a read-only bind mount of a host path into the container.
type Mount struct {
	Source string
	Target string
}

// RunSpec describes one container invocation.
type RunSpec struct {
	Image string
	// Args are passed to the image entrypoint.
	Args   []string
	Mounts []Mount
}

// Runtime provides container operations: checking availability, verifying
// images, and running containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// Run executes a container described by spec, piping stdin and stdout.
	// The container's stderr is included in the returned error.
	Run(ctx context.Context, spec RunSpec, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec RunSpec, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	if err := r.exec.RunPiped(ctx, r.bin, runArgs(spec), stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, spec.Image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

// runArgs builds "run --rm -i [-v src:dst:ro ...] image args...".
func runArgs(spec RunSpec) []string {
	args := []string{"run", "--rm", "-i"}
	for _, m := range spec.Mounts {
		args = append(args, "-v", m.Source+":"+m.Target+":ro")
	}
	args = append(args, spec.Image)
	return append(args, spec.Args...)
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
