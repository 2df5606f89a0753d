package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/amterp/ra"

	"github.com/tools4freee/t4f/internal/api"
	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/log"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the local JSON and WebSocket API")

	ctx.ServeHost, _ = ra.NewString("host").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Interface to bind (default from config)").
		Register(cmd)

	ctx.ServePort, _ = ra.NewInt("port").
		SetShort("p").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Port to listen on (will try incrementally if in use)").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(host string, port int) {
	app := mustApp(false)
	log.Init(log.Config{Level: app.Config.Log.Level, Pretty: app.Config.Log.Pretty, Output: os.Stderr})

	svc, err := api.BuildServiceContext(app.Paths, entropy.Detect())
	if err != nil {
		Fatal(err)
	}
	if !svc.Generator.SecureAvailable() {
		PrintWarning("Secure randomness is unavailable; hex, base64, uuid, password, htpasswd and id will fail")
	}

	if host == "" {
		host = app.Config.Server.Host
	}
	if port == 0 {
		port = app.Config.Server.Port
	}
	actualPort := findAvailablePort(host, port)

	server := api.NewServer(api.NewHandler(svc), host, actualPort, app.Paths.ConfigPath())

	url := fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(actualPort)))
	fmt.Println(Box(fmt.Sprintf("t4f API running at %s\n%s", RenderURL(url), RenderMuted("Press Ctrl+C to stop"))))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		Fatal(err)
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(host string, startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(host, port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(host string, port int) bool {
	listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
