// Seeds a locally running server with dev data: signs in the dev user,
// syncs the model catalog and creates a few sample collections and chat
// messages. Requires ENVIRONMENT=development on the server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const apiBase = "http://localhost:8080/api/v1"

var client = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func devSignin() (*http.Cookie, error) {
	resp, err := client.Get(apiBase + "/auth/dev-signin")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("dev signin failed (%d): %s", resp.StatusCode, string(body))
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session-token" {
			return cookie, nil
		}
	}
	return nil, fmt.Errorf("dev signin set no session cookie")
}

func postJSON(path string, payload any, cookie *http.Cookie) error {
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, apiBase+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s failed (%d): %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

func main() {
	cookie, err := devSignin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("signed in as dev user")

	if err := postJSON("/models/sync", map[string]string{}, nil); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("synced model catalog")

	collections := []string{"Comp Plan Redesign", "Accelerator Research", "Territory Notes"}
	for _, title := range collections {
		if err := postJSON("/vault/collections", map[string]string{"title": title}, cookie); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("created %d collections\n", len(collections))

	messages := []string{
		"Our reps sandbag deals in Q4. Is the accelerator curve the problem?",
		"What quota relief is reasonable for a 4-month territory transition?",
	}
	for _, content := range messages {
		if err := postJSON("/chat", map[string]string{"content": content}, cookie); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("posted %d chat messages\n", len(messages))
}
