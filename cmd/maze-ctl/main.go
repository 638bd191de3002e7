package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cli "github.com/spf13/pflag"

	"maze/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocket, "Unix socket of the maze daemon")
	timeout := cli.DurationP("timeout", "t", 30*time.Second, "How long to wait for the reply")
	ping := cli.Bool("ping", false, "Only check that the daemon is up")
	cli.Parse()

	req := ipc.Request{Cmd: ipc.CmdSay, Text: strings.Join(cli.Args(), " ")}
	if *ping {
		req = ipc.Request{Cmd: ipc.CmdPing}
	} else if strings.TrimSpace(req.Text) == "" {
		fmt.Fprintln(os.Stderr, "usage: maze-ctl [flags] <command words>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := ipc.Send(ctx, *socket, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "maze daemon not running:", err)
		os.Exit(1)
	}
	fmt.Println(resp.Reply)
}
