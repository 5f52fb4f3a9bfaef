// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		image   string
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name:  "docker image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "pandoc/core:latest",
			cmds:  map[string]bool{"docker image inspect pandoc/core:latest": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image:   "pandoc/core:latest",
			cmds:    map[string]bool{},
			wantErr: true,
		},
		{
			name:  "podman image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image: "pandoc/core:latest",
			cmds:  map[string]bool{"podman image exists pandoc/core:latest": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image:   "pandoc/core:latest",
			cmds:    map[string]bool{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runnableCmds: tt.cmds}
			rt := tt.mkRT(exec)
			err := rt.ImageExists(tt.image)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.image) {
					t.Errorf("error should mention image name, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		mkRT     func(*mockExecutor) Runtime
		image    string
		input    string
		args     []string
		mounts   []Mount
		pipeFunc func(string, []string, io.Reader, io.Writer, io.Writer) error
		wantOut  string
		wantErr  string
	}{
		{
			name:  "docker run pipes stdin to stdout",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "pandoc/core:latest",
			input: "<p>html</p>",
			args:  []string{"-f", "html", "-t", "json"},
			pipeFunc: func(name string, args []string, stdin io.Reader, stdout, _ io.Writer) error {
				if name != "docker" {
					return errors.New("expected docker binary")
				}
				want := "run --rm -i pandoc/core:latest -f html -t json"
				if got := strings.Join(args, " "); got != want {
					return errors.New("unexpected args: " + got)
				}
				data, _ := io.ReadAll(stdin)
				_, _ = stdout.Write([]byte("converted: " + string(data)))
				return nil
			},
			wantOut: "converted: <p>html</p>",
		},
		{
			name:  "podman run pipes stdin to stdout",
			mkRT:  func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image: "pandoc/core:latest",
			input: "<p>html</p>",
			pipeFunc: func(name string, args []string, stdin io.Reader, stdout, _ io.Writer) error {
				if name != "podman" {
					return errors.New("expected podman binary")
				}
				data, _ := io.ReadAll(stdin)
				_, _ = stdout.Write([]byte("converted: " + string(data)))
				return nil
			},
			wantOut: "converted: <p>html</p>",
		},
		{
			name:   "podman run mounts reference doc read-only",
			mkRT:   func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image:  "pandoc/core:3.6",
			input:  `{"blocks":[]}`,
			args:   []string{"--from", "json", "--to", "docx", "--output", "-", "--reference-doc", "/ref/law.docx"},
			mounts: []Mount{{Source: "/srv/styles", Target: "/ref"}},
			pipeFunc: func(name string, args []string, _ io.Reader, stdout, _ io.Writer) error {
				want := "run --rm -i -v /srv/styles:/ref:ro pandoc/core:3.6 --from json --to docx --output - --reference-doc /ref/law.docx"
				if got := strings.Join(args, " "); got != want {
					return errors.New("unexpected args: " + got)
				}
				_, _ = stdout.Write([]byte("PK\x03\x04"))
				return nil
			},
			wantOut: "PK\x03\x04",
		},
		{
			name:  "run failure without stderr names image",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "pandoc/core:latest",
			pipeFunc: func(string, []string, io.Reader, io.Writer, io.Writer) error {
				return errors.New("exit status 125")
			},
			wantErr: "running docker container pandoc/core:latest: exit status 125",
		},
		{
			name:  "run failure returns wrapped error",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "pandoc/core:latest",
			pipeFunc: func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
				_, _ = stderr.Write([]byte("pandoc: unknown reader\n"))
				return errors.New("container exited with code 1")
			},
			wantErr: "pandoc: unknown reader",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runPipedFunc: tt.pipeFunc}
			rt := tt.mkRT(exec)
			var out bytes.Buffer
			spec := RunSpec{Image: tt.image, Args: tt.args, Mounts: tt.mounts}
			err := rt.Run(context.Background(), spec, strings.NewReader(tt.input), &out)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != tt.wantOut {
				t.Errorf("got output %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestRunArgs(t *testing.T) {
	tests := []struct {
		name string
		spec RunSpec
		want string
	}{
		{
			name: "no mounts",
			spec: RunSpec{Image: "pandoc/core:latest", Args: []string{"--from", "html", "--to", "json"}},
			want: "run --rm -i pandoc/core:latest --from html --to json",
		},
		{
			name: "reference doc mount",
			spec: RunSpec{
				Image:  "pandoc/core:latest",
				Args:   []string{"--reference-doc", "/ref/reference.docx"},
				Mounts: []Mount{{Source: "/home/u/styles", Target: "/ref"}},
			},
			want: "run --rm -i -v /home/u/styles:/ref:ro pandoc/core:latest --reference-doc /ref/reference.docx",
		},
		{
			name: "mounts keep their order",
			spec: RunSpec{
				Image:  "pandoc/core:latest",
				Mounts: []Mount{{Source: "/a", Target: "/ref"}, {Source: "/b", Target: "/data"}},
			},
			want: "run --rm -i -v /a:/ref:ro -v /b:/data:ro pandoc/core:latest",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(runArgs(tt.spec), " "); got != tt.want {
				t.Errorf("runArgs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	docker := newDockerRuntime(exec)
	if docker.Name() != "docker" {
		t.Errorf("docker runtime name = %q, want %q", docker.Name(), "docker")
	}
	podman := newPodmanRuntime(exec)
	if podman.Name() != "podman" {
		t.Errorf("podman runtime name = %q, want %q", podman.Name(), "podman")
	}
}
