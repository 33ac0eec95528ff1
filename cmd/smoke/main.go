// Manual end-to-end exerciser for a locally running server. Walks the whole
// flow: upload, list, send, poll progress, read back the history.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

func sendJSON(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadPDF(filename string, content []byte) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, nil, err
	}
	part.Write(content)
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, baseURL+"/upload/v1", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("Starting PDF Explainer API smoke run\n")

	// 1. Upload a minimal PDF
	color.Yellow("\n1. Upload notes.pdf")
	resp, body, err := uploadPDF("notes.pdf", []byte("%PDF-1.4\n%%EOF\n"))
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	var uploadResp struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &uploadResp); err != nil || uploadResp.Data.Id == "" {
		color.Red("No session id in upload response")
		os.Exit(1)
	}
	sessionID := uploadResp.Data.Id

	// 2. List sessions
	color.Yellow("\n2. List sessions")
	resp, body, err = sendJSON("GET", "/session/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 3. Send a prompt
	color.Yellow("\n3. Send prompt")
	resp, body, err = sendJSON("POST", "/chat/v1/send", map[string]interface{}{
		"session_id": sessionID,
		"prompt":     "explain vectors",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Poll progress until the exchange settles
	color.Yellow("\n4. Poll progress")
	for i := 0; i < 60; i++ {
		resp, body, err = sendJSON("GET", "/chat/v1/progress/"+sessionID, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		var progressResp struct {
			Data struct {
				Pending bool `json:"pending"`
				Percent int  `json:"percent"`
			} `json:"data"`
		}
		json.Unmarshal(body, &progressResp)
		fmt.Printf("  pending=%v percent=%d\n", progressResp.Data.Pending, progressResp.Data.Percent)
		if !progressResp.Data.Pending {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}

	// 5. Read back the history
	color.Yellow("\n5. Session history")
	resp, body, err = sendJSON("GET", "/session/v1/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\nSmoke run complete")
}
