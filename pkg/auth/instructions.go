package auth

import (
	"fmt"
	"io"
)

// DevelopersURL is where Unsplash API keys are issued
const DevelopersURL = "https://unsplash.com/developers"

// ShowCredentialGuide writes the steps for obtaining Unsplash API keys
func ShowCredentialGuide(w io.Writer) {
	fmt.Fprintln(w, "To get your Unsplash API credentials:")
	fmt.Fprintf(w, "1. Go to %s\n", DevelopersURL)
	fmt.Fprintln(w, "2. Register/Login to your account")
	fmt.Fprintln(w, "3. Create a new application")
	fmt.Fprintln(w, "4. Copy your Access Key and Secret Key")
	fmt.Fprintln(w)
}
