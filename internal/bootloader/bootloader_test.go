package bootloader

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
	"KFlash/internal/system"
)

type recordingRunner struct {
	cmds   []system.Command
	result system.Result
	err    error
}

func (r *recordingRunner) Run(ctx context.Context, cmd system.Command) (system.Result, error) {
	return r.Output(ctx, cmd)
}

func (r *recordingRunner) Output(_ context.Context, cmd system.Command) (system.Result, error) {
	r.cmds = append(r.cmds, cmd)
	return r.result, r.err
}

func TestScriptDriverInvokesFlashUSB(t *testing.T) {
	r := &recordingRunner{}
	d := NewScriptDriver(r, "", "/home/pi/klipper/scripts", logger.NewMockLogger())

	if err := d.EnterBootloader(context.Background(), "/dev/serial/by-id/usb-Klipper-if00"); err != nil {
		t.Fatalf("EnterBootloader returned error: %v", err)
	}

	if len(r.cmds) != 1 {
		t.Fatalf("expected one command, got %d", len(r.cmds))
	}
	cmd := r.cmds[0]
	if cmd.Name != "python3" {
		t.Fatalf("python = %q", cmd.Name)
	}
	if len(cmd.Args) != 4 || cmd.Args[0] != "-c" {
		t.Fatalf("unexpected args %q", cmd.Args)
	}
	if !strings.Contains(cmd.Args[1], "flash_usb.enter_bootloader(sys.argv[2])") {
		t.Fatalf("script does not call enter_bootloader: %q", cmd.Args[1])
	}
	if cmd.Args[2] != "/home/pi/klipper/scripts" || cmd.Args[3] != "/dev/serial/by-id/usb-Klipper-if00" {
		t.Fatalf("unexpected argv %q", cmd.Args[2:])
	}
}

func TestScriptDriverReportsTraceback(t *testing.T) {
	r := &recordingRunner{result: system.Result{
		ExitCode: 1,
		Stderr: "Traceback (most recent call last):\n  File \"<string>\", line 4, in <module>\n" +
			"FileNotFoundError: [Errno 2] No such file or directory: '/dev/ttyACM9'\n",
	}}
	d := NewScriptDriver(r, "python3", "/s", nil)

	err := d.EnterBootloader(context.Background(), "/dev/ttyACM9")
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Category != apperrors.ErrCategoryBootloader {
		t.Fatalf("expected bootloader AppError, got %v", err)
	}
	if !strings.Contains(appErr.Summary(), "FileNotFoundError") {
		t.Fatalf("summary lacks exception: %q", appErr.Summary())
	}
}

func TestScriptDriverStartFailure(t *testing.T) {
	r := &recordingRunner{err: errors.New("python3 not found")}
	d := NewScriptDriver(r, "python3", "/s", nil)

	if !apperrors.HasCode(d.EnterBootloader(context.Background(), "/dev/ttyACM0"), apperrors.CodeBootloaderEntry) {
		t.Fatalf("expected %s", apperrors.CodeBootloaderEntry)
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("  \n"); got != "no error output" {
		t.Fatalf("lastLine(blank) = %q", got)
	}
	if got := lastLine("a\nb\n"); got != "b" {
		t.Fatalf("lastLine = %q", got)
	}
}

type fakePort struct {
	dtr      []bool
	closed   bool
	dtrErr   error
	closeErr error
}

func (p *fakePort) SetDTR(dtr bool) error {
	p.dtr = append(p.dtr, dtr)
	return p.dtrErr
}

func (p *fakePort) Close() error {
	p.closed = true
	return p.closeErr
}

func TestTouchDriverDropsDTRAndCloses(t *testing.T) {
	port := &fakePort{}
	var opened string
	d := &TouchDriver{
		open: func(path string) (modemPort, error) {
			opened = path
			return port, nil
		},
		logger: logger.NewMockLogger(),
	}

	if err := d.EnterBootloader(context.Background(), "/dev/ttyACM0"); err != nil {
		t.Fatalf("EnterBootloader returned error: %v", err)
	}
	if opened != "/dev/ttyACM0" {
		t.Fatalf("opened %q", opened)
	}
	if len(port.dtr) != 1 || port.dtr[0] {
		t.Fatalf("expected a single DTR drop, got %v", port.dtr)
	}
	if !port.closed {
		t.Fatalf("port not closed")
	}
}

func TestTouchDriverErrors(t *testing.T) {
	cases := map[string]*TouchDriver{
		"open": {open: func(string) (modemPort, error) { return nil, errors.New("busy") }, logger: logger.NewMockLogger()},
		"dtr": {open: func(string) (modemPort, error) {
			return &fakePort{dtrErr: errors.New("ioctl")}, nil
		}, logger: logger.NewMockLogger()},
		"close": {open: func(string) (modemPort, error) {
			return &fakePort{closeErr: errors.New("close")}, nil
		}, logger: logger.NewMockLogger()},
	}

	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			if !apperrors.HasCode(d.EnterBootloader(context.Background(), "/dev/ttyACM0"), apperrors.CodeBootloaderEntry) {
				t.Fatalf("expected %s", apperrors.CodeBootloaderEntry)
			}
		})
	}
}

func TestNewFromConfigSelectsDriver(t *testing.T) {
	cfg := system.DefaultConfig()
	if _, ok := NewFromConfig(cfg, &recordingRunner{}, nil).(*ScriptDriver); !ok {
		t.Fatalf("expected script driver by default")
	}
	cfg.Driver = system.DriverSerial
	if _, ok := NewFromConfig(cfg, &recordingRunner{}, nil).(*TouchDriver); !ok {
		t.Fatalf("expected touch driver")
	}
}
