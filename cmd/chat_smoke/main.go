package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"portfolio-ai-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(client *http.Client, method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func adminToken(secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "chat-smoke",
		"role":    serverutils.AdminRole,
		"exp":     time.Now().Add(10 * time.Minute).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func step(client *http.Client, title, method, url, token string, body interface{}) {
	color.Yellow("\n%s", title)
	resp, respBody, err := sendRequest(client, method, url, token, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(respBody)
}

func main() {
	baseURL := flag.String("base", "http://localhost:3000/api", "gateway API base URL")
	message := flag.String("message", "What technologies do you work with?", "visitor message")
	language := flag.String("lang", "en", "visitor language (ISO 639-1)")
	provider := flag.String("test-provider", "", "also run the admin connection test for this provider")
	flag.Parse()

	client := &http.Client{Timeout: 90 * time.Second}
	sessionId := uuid.NewString()

	color.Cyan("🚀 Chat gateway smoke test (session %s)\n", sessionId)

	step(client, "[PUBLIC] 1. Get widget config", http.MethodGet, *baseURL+"/chat/v1/config", "", nil)

	step(client, "[PUBLIC] 2. Send chat message", http.MethodPost, *baseURL+"/chat/v1/message", "", map[string]string{
		"message":    *message,
		"session_id": sessionId,
		"language":   *language,
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		color.Magenta("\nJWT_SECRET not set, skipping admin checks")
		return
	}
	token, err := adminToken(secret)
	if err != nil {
		color.Red("Failed to sign admin token: %v", err)
		os.Exit(1)
	}

	step(client, "[ADMIN] 3. Get AI config", http.MethodGet, *baseURL+"/admin/ai-config", token, nil)
	step(client, "[ADMIN] 4. Get stored conversation", http.MethodGet, *baseURL+"/admin/conversations/"+sessionId, token, nil)

	if *provider != "" {
		step(client, "[ADMIN] 5. Test provider connection", http.MethodPost, *baseURL+"/admin/ai-config/test", token, map[string]string{
			"provider": *provider,
		})
	}

	color.Cyan("\n✅ Done")
}
