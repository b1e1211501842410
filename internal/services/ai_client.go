package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "math/rand"
  "net"
  "net/http"
  "strconv"
  "strings"
  "time"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/utils"
)

// ErrAIUnavailable is returned when no generation credential is configured.
// Callers downgrade it to fallback content, never to a request failure.
var ErrAIUnavailable = errors.New("AI generation unavailable - API key not configured")

type AIClient interface {
  // GenerateText sends a system message plus a user prompt and returns the
  // generated text. sessionID is forwarded for provider-side correlation.
  GenerateText(ctx context.Context, sessionID, system, prompt string) (string, error)
}

type aiClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client

  maxRetries int
}

// NewAIClient builds the OpenAI-compatible chat client. A missing API key is
// not a construction error: the client stays callable and GenerateText
// reports ErrAIUnavailable deterministically.
func NewAIClient(log *logger.Logger) AIClient {
  serviceLog := log.With("service", "AIClient")

  apiKey := utils.GetEnv("OPENAI_API_KEY", "", log)
  if apiKey == "" {
    serviceLog.Warn("OPENAI_API_KEY is not set, AI generation will be unavailable")
  }
  baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com", log)
  model := utils.GetEnv("OPENAI_MODEL", "gpt-5.2", log)

  timeoutSec := envSeconds("OPENAI_TIMEOUT_SECONDS", 120)
  maxRetries := 2
  if v := utils.GetEnv("OPENAI_MAX_RETRIES", "", nil); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
      maxRetries = parsed
    }
  }

  return &aiClient{
    log:        serviceLog,
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
  }
}

func envSeconds(key string, defaultSec int) int {
  if v := utils.GetEnv(key, "", nil); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      return parsed
    }
  }
  return defaultSec
}

type aiHTTPError struct {
  StatusCode int
  Body       string
}

func (e *aiHTTPError) Error() string {
  return fmt.Sprintf("ai http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  return code >= 500 && code <= 599
}

func isRetryableErr(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, context.DeadlineExceeded) {
    return true
  }
  var netErr net.Error
  if errors.As(err, &netErr) && netErr.Timeout() {
    return true
  }
  var httpErr *aiHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

func jitterSleep(base time.Duration) time.Duration {
  // +/- 20%
  if base <= 0 {
    return 0
  }
  delta := base.Seconds() * 0.2
  low := base.Seconds() - delta
  high := base.Seconds() + delta
  if low < 0 {
    low = 0
  }
  v := low + rand.Float64()*(high-low)
  return time.Duration(v * float64(time.Second))
}

type chatCompletionRequest struct {
  Model    string        `json:"model"`
  Messages []chatMessage `json:"messages"`
  User     string        `json:"user,omitempty"`
}

type chatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message chatMessage `json:"message"`
  } `json:"choices"`
}

func (c *aiClient) GenerateText(ctx context.Context, sessionID, system, prompt string) (string, error) {
  if c.apiKey == "" {
    return "", ErrAIUnavailable
  }

  req := chatCompletionRequest{
    Model: c.model,
    Messages: []chatMessage{
      {Role: "system", Content: system},
      {Role: "user", Content: prompt},
    },
    User: sessionID,
  }
  var resp chatCompletionResponse
  if err := c.do(ctx, "POST", "/v1/chat/completions", req, &resp); err != nil {
    return "", err
  }
  if len(resp.Choices) == 0 {
    return "", fmt.Errorf("ai response contained no choices")
  }
  return resp.Choices[0].Message.Content, nil
}

func (c *aiClient) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
  var buf bytes.Buffer
  if body != nil {
    if err := json.NewEncoder(&buf).Encode(body); err != nil {
      return nil, nil, err
    }
  }

  req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
  if err != nil {
    return nil, nil, err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return nil, nil, err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return resp, nil, readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return resp, raw, &aiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  return resp, raw, nil
}

func (c *aiClient) do(ctx context.Context, method, path string, body any, out any) error {
  backoff := 1 * time.Second

  for attempt := 0; attempt <= c.maxRetries; attempt++ {
    if ctx.Err() != nil {
      return ctx.Err()
    }

    resp, raw, err := c.doOnce(ctx, method, path, body)
    if err == nil {
      if out == nil {
        return nil
      }
      if uErr := json.Unmarshal(raw, out); uErr != nil {
        return fmt.Errorf("ai decode error: %w; raw=%s", uErr, string(raw))
      }
      return nil
    }

    if !isRetryableErr(err) {
      return err
    }
    if attempt == c.maxRetries {
      return err
    }

    sleepFor := backoff
    if resp != nil {
      ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
      if ra != "" {
        if secs, parseErr := strconv.Atoi(ra); parseErr == nil && secs > 0 {
          sleepFor = time.Duration(secs) * time.Second
        }
      }
    }
    if sleepFor > 10*time.Second {
      sleepFor = 10 * time.Second
    }
    sleepFor = jitterSleep(sleepFor)

    c.log.Warn("AI request retrying",
      "path", path,
      "attempt", attempt+1,
      "max_retries", c.maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )

    time.Sleep(sleepFor)
    backoff *= 2
  }

  return fmt.Errorf("unreachable retry loop")
}
