package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"
)

// PageAudio plays and captures audio through one session's page: playback
// goes through an Audio element, capture through getUserMedia and a
// MediaRecorder. It satisfies the audio bridge the OpenAI speech backend
// needs (openaivoice.AudioIO).
type PageAudio struct {
	manager *SessionManager
	session string
}

// NewPageAudio creates a PageAudio bound to the named session of the
// given manager.
func NewPageAudio(manager *SessionManager, session string) *PageAudio {
	return &PageAudio{manager: manager, session: session}
}

// Play sounds the encoded audio through the page and returns when
// playback ends.
func (a *PageAudio) Play(ctx context.Context, data []byte, mimeType string) error {
	sess, err := a.manager.GetSession(a.session)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = sess.Page.Evaluate(playAudioScript, map[string]interface{}{
		"data": base64.StdEncoding.EncodeToString(data),
		"mime": mimeType,
	})
	if err != nil {
		return fmt.Errorf("audio playback failed: %w", err)
	}
	return nil
}

// Record captures d worth of microphone audio from the page and returns
// the encoded bytes with their MIME type.
func (a *PageAudio) Record(ctx context.Context, d time.Duration) ([]byte, string, error) {
	sess, err := a.manager.GetSession(a.session)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	result, err := sess.Page.Evaluate(recordAudioScript, d.Milliseconds())
	if err != nil {
		return nil, "", fmt.Errorf("audio capture failed: %w", err)
	}

	var capture struct {
		Data string `json:"data"`
		Mime string `json:"mime"`
	}
	if err := remarshal(result, &capture); err != nil {
		return nil, "", fmt.Errorf("audio capture returned unexpected data: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(capture.Data)
	if err != nil {
		return nil, "", fmt.Errorf("audio capture returned invalid base64: %w", err)
	}
	return data, capture.Mime, nil
}

// playAudioScript plays base64-encoded audio; the promise resolves on
// ended and rejects on a playback error.
const playAudioScript = `(arg) => new Promise((resolve, reject) => {
	const audio = new Audio('data:' + arg.mime + ';base64,' + arg.data);
	audio.onended = () => resolve(true);
	audio.onerror = () => reject(new Error('audio playback error'));
	audio.play().catch((err) => reject(err));
})`

// recordAudioScript captures microphone audio for the given number of
// milliseconds and resolves with the base64-encoded recording.
const recordAudioScript = `(ms) => new Promise((resolve, reject) => {
	navigator.mediaDevices.getUserMedia({ audio: true }).then((stream) => {
		const recorder = new MediaRecorder(stream);
		const chunks = [];
		recorder.ondataavailable = (e) => {
			if (e.data.size > 0) {
				chunks.push(e.data);
			}
		};
		recorder.onstop = () => {
			stream.getTracks().forEach((t) => t.stop());
			const blob = new Blob(chunks, { type: recorder.mimeType });
			const reader = new FileReader();
			reader.onloadend = () => resolve({
				data: String(reader.result).split(',')[1] || '',
				mime: recorder.mimeType,
			});
			reader.readAsDataURL(blob);
		};
		recorder.onerror = () => reject(new Error('audio capture error'));
		recorder.start();
		setTimeout(() => recorder.stop(), ms);
	}).catch((err) => reject(err));
})`
