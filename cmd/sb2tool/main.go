// The sb2tool command signs plain images and inspects LPC55 boot images.
//
// Usage:
//
//	sb2tool [flags] sign <config.toml>
//	sb2tool [flags] show <file>
//	sb2tool [flags] rotkh <config.toml>
//	sb2tool [flags] sniff <file>
//
// Logging is controlled with the klog flags, -v=2 shows parser details.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"
)

type subcommand struct {
	name  string
	arg   string
	usage string
	run   func(w io.Writer, arg string) error
}

var subcommands = []subcommand{
	{"sign", "config.toml", "sign the image named in the config", runSign},
	{"show", "file", "verify and describe an SB2.1 container or signed image", runShow},
	{"rotkh", "config.toml", "print the root key table hash for the config's certificates", runRotkh},
	{"sniff", "file", "print the detected file type", runSniff},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> <arg>\n\nCommands:\n", os.Args[0])
	for _, c := range subcommands {
		fmt.Fprintf(out, "  %-6s <%s>\n        %s\n", c.name, c.arg, c.usage)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}

	for _, c := range subcommands {
		if c.name != args[0] {
			continue
		}
		if err := c.run(os.Stdout, args[1]); err != nil {
			klog.Exitf("%s %s: %v", c.name, args[1], err)
		}
		return
	}

	fmt.Fprintf(flag.CommandLine.Output(), "unknown command %q\n\n", args[0])
	flag.Usage()
	os.Exit(2)
}
