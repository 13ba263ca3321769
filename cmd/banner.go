package cmd

import (
	"fmt"
	"io"
)

const banner = `
   ____           _             ____  _
  / ___|__ _  ___| |__   ___   / ___|(_)_ __ ___
 | |   / _' |/ __| '_ \ / _ \  \___ \| | '_ ' _ \
 | |__| (_| | (__| | | |  __/   ___) | | | | | | |
  \____\__,_|\___|_| |_|\___|  |____/|_|_| |_| |_|
`

func printBanner(w io.Writer) {
	fmt.Fprint(w, banner+"\n")
}
