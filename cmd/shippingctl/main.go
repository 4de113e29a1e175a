// Package main is shippingctl, a command line client that runs the shipping
// service in-process from the same configuration as the API.
//
// Usage:
//
//	shippingctl quote --weight 2 --value 100 --origin CABA --destination Rosario
//	shippingctl create --weight 10 --value 500 --origin A --destination B [--carrier correo]
//	shippingctl track --carrier envia --tracking-number ENV123
//	shippingctl recommend --weight 25 --value 100
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
