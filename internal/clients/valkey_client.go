package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

const (
	VALKEY_ANALYSIS_KEY_PREFIX = "analysis:video:"
	ANALYSIS_CACHE_TTL_SECONDS = 3600
)

type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

func valkeyOptions() valkey.ClientOption {
	opts := valkey.ClientOption{
		InitAddress:      []string{os.Getenv("VALKEY_INIT_ADDRESS")},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}
	return opts
}

// InitValkey connects the shared cache client. The server runs without
// it when VALKEY_INIT_ADDRESS is unset.
func InitValkey() (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		client, err := valkey.NewClient(valkeyOptions())
		if err != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error())
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	if initErr != nil {
		return nil, initErr
	}
	if valkeyInstance == nil {
		return nil, fmt.Errorf("[ValkeyClient] Valkey client is not initialized")
	}
	return valkeyInstance, nil
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// CacheVideoAnalysis stores a finished analysis under the video id with
// a TTL, so repeat requests for the same video skip model inference.
func (vc *ValkeyClient) CacheVideoAnalysis(ctx context.Context, analysis models.VideoAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	key := VALKEY_ANALYSIS_KEY_PREFIX + analysis.VideoID
	res := vc.doWithRetry(ctx,
		vc.Client.B().Set().Key(key).Value(string(payload)).
			ExSeconds(ANALYSIS_CACHE_TTL_SECONDS).Build(), 3)
	if err := res.Error(); err != nil {
		return err
	}

	slog.Info("[ValkeyClient] Cached video analysis",
		slog.String("video_id", analysis.VideoID))
	return nil
}

// GetVideoAnalysis returns the cached analysis for a video, if any.
func (vc *ValkeyClient) GetVideoAnalysis(ctx context.Context, videoID string) (*models.VideoAnalysis, bool) {
	key := VALKEY_ANALYSIS_KEY_PREFIX + videoID
	res := vc.doWithRetry(ctx, vc.Client.B().Get().Key(key).Build(), 3)
	if res.Error() != nil {
		return nil, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return nil, false
	}

	var analysis models.VideoAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		slog.Warn("[ValkeyClient] Failed to decode cached analysis",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return nil, false
	}
	return &analysis, true
}

func (vc *ValkeyClient) doWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			vc.recreateClient()
		}
		time.Sleep(250 * time.Millisecond)
	}
	return result
}

func (vc *ValkeyClient) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyClient] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	vc.Client.Close()

	client, err := valkey.NewClient(valkeyOptions())
	if err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to recreate Valkey client: %w", err))
	}
	vc.Client = client
	slog.Info("[ValkeyClient] Valkey client recreated")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
