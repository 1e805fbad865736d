package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

var (
	baseURL  = flag.String("base-url", "http://localhost:3000/api", "API base URL")
	username = flag.String("user", "yuki", "username to log in with")
	password = flag.String("pass", "password123", "password to log in with")
)

type loginResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		FirstName   string `json:"first_name"`
	} `json:"data"`
}

type chatResponse struct {
	Data struct {
		Reply struct {
			Response    string   `json:"response"`
			Buttons     []string `json:"buttons,omitempty"`
			Intent      string   `json:"intent,omitempty"`
			DisplayType string   `json:"display_type,omitempty"`
			Escalated   bool     `json:"escalated,omitempty"`
		} `json:"reply"`
	} `json:"data"`
}

func main() {
	flag.Parse()

	userColor := color.New(color.FgCyan, color.Bold)
	botColor := color.New(color.FgGreen)
	metaColor := color.New(color.FgYellow)

	fmt.Println("=== ShopEZ Assistant Simulation Client ===")

	token, name, err := login()
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	metaColor.Printf("Logged in as %s\n", name)

	sessionID := uuid.NewString()
	metaColor.Printf("Session: %s\n\n", sessionID)
	fmt.Println("Type a message and press Enter. Ctrl-D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		userColor.Print("YOU> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		start := time.Now()
		reply, err := sendChat(token, sessionID, text)
		elapsed := time.Since(start)

		if err != nil {
			color.Red("Error: %v", err)
			continue
		}

		botColor.Printf("BOT (%v): %s\n", elapsed.Round(time.Millisecond), reply.Data.Reply.Response)
		if len(reply.Data.Reply.Buttons) > 0 {
			metaColor.Printf("     [%s]\n", strings.Join(reply.Data.Reply.Buttons, " | "))
		}
		if reply.Data.Reply.Escalated {
			color.Red("     >> escalated to a human agent")
		}
	}
}

func login() (token, firstName string, err error) {
	payload, _ := json.Marshal(map[string]string{
		"username": *username,
		"password": *password,
	})

	resp, err := http.Post(*baseURL+"/auth/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}

	var res loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", "", err
	}
	return res.Data.AccessToken, res.Data.FirstName, nil
}

func sendChat(token, sessionID, text string) (*chatResponse, error) {
	payload, _ := json.Marshal(map[string]string{
		"session_id": sessionID,
		"message":    text,
	})

	req, _ := http.NewRequest("POST", *baseURL+"/assistant/chat", bytes.NewBuffer(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}

	var res chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
