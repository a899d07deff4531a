/*
Package svgico converts a directory of SVG icons into 256x256 raster images
and single entry ICO files.

Every source is scaled uniformly so that its larger dimension fills the
canvas, centered, and drawn over transparent padding. The raster image is
written to disk, read back and packaged as an icon.

The package provides a command line interface. To check the supported flags type:

	$ svgico --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/svgico"
	)

	func main() {
		p := &svgico.Processor{
			RasterFormat: svgico.FormatPNG,
		}
		op := &svgico.Ops{
			Src:       "assets/svg",
			RasterDst: "build/png",
			IconDst:   "build/ico",
		}

		if err := p.Execute(context.Background(), op); err != nil {
			fmt.Printf("Error converting icons: %s", err.Error())
		}
	}
*/
package svgico
