package main

import (
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// play streams r to the default output device until it ends or ctx is
// cancelled. A second goroutine logs processor statistics once a second.
func play(ctx context.Context, log *logrus.Logger, r *renderer, sampleRate int) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	player := otoCtx.NewPlayer(r)
	defer player.Close()

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)

		player.Play()
		tick := time.NewTicker(20 * time.Millisecond)
		defer tick.Stop()

		for player.IsPlaying() {
			select {
			case <-ctx.Done():
				player.Pause()
				return nil
			case <-tick.C:
			}
		}
		return player.Err()
	})

	g.Go(func() error {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()

		for {
			select {
			case <-done:
				return nil
			case <-tick.C:
				st := r.proc.Stats()
				log.WithFields(logrus.Fields{
					"function": "play",
					"frames":   st.Frames,
					"cutoff":   st.Cutoff,
					"onsets":   st.Onsets,
					"triggers": st.Triggers,
					"voices":   st.ActiveVoices,
				}).Info("Playback status")
			}
		}
	})

	return g.Wait()
}
