// Command token issues an access token for a rollcall identity key.
//
//	token -s <secret> -i <identity key> [-t 720h]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/rollcall/internal/server/auth"
)

func main() {
	secret := flag.String("s", "secretKey", "HMAC secret shared with the server")
	identity := flag.String("i", "", "identity key to issue the token for")
	validity := flag.Duration("t", 0, "token validity, 0 means no expiry")
	flag.Parse()

	if *identity == "" {
		fmt.Fprintln(os.Stderr, "identity key (-i) is required")
		os.Exit(2)
	}

	token, err := auth.GenerateToken(*identity, []byte(*secret), *validity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
