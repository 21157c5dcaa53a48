package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mrnavastar/mclaunch/util"
	"golang.org/x/sync/errgroup"
)

// ErrAlreadyStarted is returned by Launch while a game is starting or running.
var ErrAlreadyStarted = errors.New("game is already started")

// State is where a GameLauncher is in its launch lifecycle.
type State int

const (
	Idle State = iota
	Starting
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a GameLauncher.
type Options struct {
	WorkDir string
	JavaHome string
	BootstrapClass string
	// LauncherPath is put first on the classpath. Empty means the running
	// executable.
	LauncherPath string
	// JoinStderr makes natives cleanup wait for the stderr reader as well
	// as the stdout reader.
	JoinStderr bool
	Console util.Console
}

// GameLauncher runs at most one game process at a time.
type GameLauncher struct {
	opts Options

	mu       sync.Mutex
	starting bool
	session  *Session
}

// NewGameLauncher fills in a pterm console and the running executable's path
// when opts leaves them empty.
func NewGameLauncher(opts Options) *GameLauncher {
	if opts.Console == nil {
		opts.Console = util.PtermConsole{}
	}
	if opts.LauncherPath == "" {
		opts.LauncherPath = launcherExecutable(opts.Console)
	}
	return &GameLauncher{opts: opts}
}

// State reports the lifecycle state of the most recent launch.
func (l *GameLauncher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.starting:
		return Starting
	case l.session == nil:
		return Idle
	case l.session.Alive():
		return Running
	default:
		return Terminated
	}
}

// IsStarted reports whether a game process exists and is alive.
func (l *GameLauncher) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session != nil && l.session.Alive()
}

// HasError reports whether the last launch failed, then clears the flag.
func (l *GameLauncher) HasError() bool {
	l.mu.Lock()
	session := l.session
	l.mu.Unlock()

	if session == nil {
		return false
	}
	return session.HasError()
}

// Launch prepares the runtime environment and starts the game. Only a launch
// refused because a game is already starting or running returns an error;
// every other failure is logged to the console and reported through HasError
// and the returned session.
func (l *GameLauncher) Launch(ctx context.Context, ver *util.Version, profile util.Profile, user util.User) (*Session, error) {
	l.mu.Lock()
	if l.starting || (l.session != nil && l.session.Alive()) {
		l.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	l.starting = true
	l.mu.Unlock()

	session := l.prepare(ctx, ver, profile, user)
	if err := ctx.Err(); err != nil {
		session.abort(err)
	} else {
		session.start()
	}

	l.mu.Lock()
	l.session = session
	l.starting = false
	l.mu.Unlock()
	return session, nil
}

func (l *GameLauncher) prepare(ctx context.Context, ver *util.Version, profile util.Profile, user util.User) *Session {
	console := l.opts.Console
	workDir := l.opts.WorkDir

	session := &Session{
		WorkDir: workDir,
		AssetsDir: AssetsDir(workDir, ver.Assets),
		console: console,
		joinStderr: l.opts.JoinStderr,
		done: make(chan struct{}),
	}

	natives, err := acquireNatives(workDir, ver.ID, console)
	if err != nil {
		console.Error("Failed to create natives dir: " + err.Error())
		natives = &nativesDir{console: console}
	}
	session.natives = natives
	session.NativesDir = natives.path

	absWorkDir, _ := filepath.Abs(workDir)
	console.Info("Launching Minecraft " + ver.ID + " on " + absWorkDir)
	console.Info("Using natives dir: " + natives.path)

	var classpath string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		classpath = BuildClasspath(workDir, ver, natives.path, l.opts.LauncherPath, console)
		return gctx.Err()
	})
	if ver.Assets == LegacyAssets {
		g.Go(func() error {
			console.Info("Building virtual asset folder.")
			_, err := MaterializeAssets(gctx, workDir, ver.Assets)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if err != nil {
				console.Error("Failed to create virtual asset folder: " + err.Error())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		console.Error("Launch preparation interrupted: " + err.Error())
	}

	if err := ensureGameDir(profile); err != nil {
		console.Error("Failed to create game dir: " + err.Error())
	}

	console.Info("Preparing game args.")
	session.Args = BuildArguments(LaunchContext{
		WorkDir: workDir,
		Version: ver,
		Profile: profile,
		User: user,
		NativesDir: natives.path,
		AssetsDir: session.AssetsDir,
		Classpath: classpath,
		JavaHome: l.opts.JavaHome,
		BootstrapClass: l.opts.BootstrapClass,
	})

	console.Info("Full game launcher parameters: ")
	for _, arg := range session.Args {
		if user.AccessToken != "" {
			arg = strings.ReplaceAll(arg, user.AccessToken, "<access token>")
		}
		console.Info(arg)
	}
	return session
}
