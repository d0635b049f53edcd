package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/Direktor799/unnamed-os/internal/bootcfg"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: kernel <boot-manifest.yaml>")
		os.Exit(2)
	}

	manifest, err := bootcfg.LoadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "kernel: %v\n", err)
		os.Exit(1)
	}

	k, err := Boot(newPlatform(), newBackend(), kernelLayout(), manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kernel: %v\n", err)
		os.Exit(1)
	}

	Banner(os.Stdout, manifest)

	bar := progressbar.NewOptions(len(manifest.Images),
		progressbar.OptionSetDescription("loading images"),
		progressbar.OptionSetWriter(os.Stderr),
	)
	for _, img := range manifest.Images {
		elfData, err := os.ReadFile(img.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nkernel: load %s: %v\n", img.Name, err)
			os.Exit(1)
		}
		if _, err := k.LoadImage(elfData); err != nil {
			fmt.Fprintf(os.Stderr, "\nkernel: start %s: %v\n", img.Name, err)
			os.Exit(1)
		}
		_ = bar.Add(1)
	}
	fmt.Fprintln(os.Stderr)

	k.Run()
}
