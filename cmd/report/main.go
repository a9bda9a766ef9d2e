// Command report generates the guest complaint topic report and filtered
// complaint tables from the configured workbooks.
//
// Usage:
//
//	report --month Janeiro --location Portugal --out relatorio.md
//	report --topic Limpeza --render
//	report table --unit "Hotel A" --format xlsx --out reclamacoes.xlsx
//	report check --locations Portugal=portugal.xlsx --locations Londres=londres.xlsx
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
