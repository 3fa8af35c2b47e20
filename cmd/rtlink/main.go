/*
@Description: rtlink command-line entrypoint
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lzww0608/rtlink"
)

func main() {
	os.Exit(run())
}

func run() int {
	var srcFlag, dstFlag string

	cmd := &cobra.Command{
		Use:           "rtlink",
		Short:         "Bidirectional UDP packet-plane peer with a live latency dashboard",
		SilenceUsage:  false,
		SilenceErrors: false,
	}
	cmd.Flags().StringVar(&srcFlag, "src", "", "source endpoint, ipv4:port")
	cmd.Flags().StringVar(&dstFlag, "dst", "", "destination endpoint, ipv4:port")
	_ = cmd.MarkFlagRequired("src")
	_ = cmd.MarkFlagRequired("dst")

	exitCode := 0
	cmd.RunE = func(_ *cobra.Command, _ []string) error {
		exitCode = serve(srcFlag, dstFlag)
		return nil
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

func serve(srcFlag, dstFlag string) int {
	srcAddr, srcPort, err := rtlink.ParseEndpoint(srcFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rtlink:", err)
		return 1
	}
	dstAddr, dstPort, err := rtlink.ParseEndpoint(dstFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rtlink:", err)
		return 1
	}

	cfg := rtlink.DefaultConfig()
	cfg.SrcAddr, cfg.SrcPort = srcAddr, srcPort
	cfg.DstAddr, cfg.DstPort = dstAddr, dstPort

	dash := rtlink.NewDashboard(os.Stdout, 24, 80)
	log := rtlink.NewLogger(dash)
	defer log.Sync()

	shutdown := rtlink.DefaultShutdownHandler()
	shutdown.Start()

	ep, err := rtlink.NewEndpoint(cfg)
	if err != nil {
		log.Error("failed to open udp endpoint", zap.Error(err))
		return 1
	}
	// Closed only after tm.Wait() returns below: the RX/TX workers poll
	// tm.shutdown.Running() on their own 100ms recv-timeout cadence and
	// exit cleanly well before this point, so the socket is never closed
	// out from under a blocked Receive/Send (mirrors UdpThreadManager's
	// stop() joining the worker threads before ever touching the
	// socket).
	defer ep.Close()

	handler := rtlink.PacketHandlerFunc(func(view []byte) {
		// Application-level packet consumption is out of scope for
		// this runtime; the payload view is ignored. Copy view here
		// before retaining it beyond this call.
		_ = view
	})

	tm := rtlink.NewThreadManager(cfg, ep, handler, shutdown, log)
	tm.Start()

	tx := rtlink.NewTxPacket(0x00000001)
	sched := rtlink.NewScheduler(cfg, tx, tm, dash, log, shutdown)

	dash.Initialize()
	shutdown.OnShutdown(dash.Shutdown)

	sched.Run()
	tm.Wait()

	if err := tm.FatalErr(); err != nil {
		log.Error("worker exited with fatal error", zap.Error(err))
		return 1
	}
	return 0
}
