package system

import (
	"errors"
	"reflect"
	"testing"
)

func TestToolProbeMissing(t *testing.T) {
	installed := map[string]bool{"ls": true, "make": true}
	probe := &ToolProbe{lookPath: func(name string) (string, error) {
		if installed[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}}

	got := probe.Missing("ls", "dfu-util", "make", "python3")
	want := []string{"dfu-util", "python3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing() = %v, want %v", got, want)
	}
	if probe.Missing("ls") != nil {
		t.Fatalf("expected nil when everything is installed")
	}
}
