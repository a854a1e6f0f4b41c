/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import "log"

func main() {
	log.SetFlags(0)
	if err := Execute(); err != nil {
		log.Fatal(err)
	}
}
