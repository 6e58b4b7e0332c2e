// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/gjormungandr/header"
)

func main() {
	// Parse commandline
	framed := flag.Bool(
		"framed",
		false,
		"input carries the length-prefixed outer framing",
	)
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("Usage: header-inspect [-framed] <hex-encoded header>")
		os.Exit(1)
	}

	data, err := hex.DecodeString(strings.TrimSpace(flag.Arg(0)))
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if *framed {
		raw, err := header.DecodeRaw(bytes.NewReader(data))
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		data = raw
	}

	h, err := header.DecodeHeaderBytes(data)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Print("Decoded header:\n\n")
	fmt.Printf("Hash: %s\n", h.Hash())
	fmt.Printf("Parent hash: %s\n", h.ParentId())
	fmt.Printf("Version: %s\n", h.Version())
	fmt.Printf("Date: %s\n", h.BlockDate())
	fmt.Printf("Chain length: %d\n", h.ChainLength())
	fmt.Printf("Content size: %d\n", h.BlockContentSize())
	fmt.Printf("Content hash: %s\n", h.BlockContentHash())

	switch proof := h.Proof.(type) {
	case header.NoProof:
		fmt.Printf("Proof: none\n")
	case header.BftProof:
		fmt.Printf("Proof: BFT\n")
		fmt.Printf("Leader id: %s\n", proof.LeaderID)
	case header.GenesisPraosProof:
		fmt.Printf("Proof: Genesis-Praos\n")
		fmt.Printf("Praos id: %s\n", proof.PraosID)
		fmt.Printf(
			"KES period: %d\n",
			header.KesPeriod(h.BlockDate().SlotID),
		)
	}
}
