// Package components contains reusable TUI widgets.
package components

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// MediaKind distinguishes proof media types.
type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaVideo
)

// Media is one carousel entry.
type Media struct {
	Kind  MediaKind
	URL   string
	Label string
}

const (
	// MuteIndicatorDuration is how long the mute state flashes on
	// screen after a toggle.
	MuteIndicatorDuration = 1200 * time.Millisecond

	springFPS        = 60
	springFrequency  = 7.0
	springDamping    = 0.8
	settledTolerance = 0.005
)

// Carousel cycles through a card's proof media. Navigation is animated
// with a spring so manual steps and autoplay advances ease into place.
// At most one carousel should autoplay at a time; the owner gates that
// with SetAutoplay based on which card is most visible.
type Carousel struct {
	media []Media
	index int

	// Spring state: pos eases toward float64(index).
	spring harmonica.Spring
	pos    float64
	vel    float64

	autoplay   bool
	holdPaused bool
	muted      bool

	// muteIndicator is true while the post-toggle flash is visible.
	muteIndicator bool
}

// NewCarousel creates a carousel over media. Videos start muted.
func NewCarousel(media []Media) *Carousel {
	return &Carousel{
		media:  media,
		spring: harmonica.NewSpring(harmonica.FPS(springFPS), springFrequency, springDamping),
		muted:  true,
	}
}

// Len returns the number of media entries.
func (c *Carousel) Len() int { return len(c.media) }

// Index returns the centered media index.
func (c *Carousel) Index() int { return c.index }

// Current returns the centered media, nil when empty.
func (c *Carousel) Current() *Media {
	if len(c.media) == 0 {
		return nil
	}
	return &c.media[c.index]
}

// Next advances to the next media. The track does not loop; at the last
// entry this is a no-op.
func (c *Carousel) Next() {
	if c.index < len(c.media)-1 {
		c.index++
	}
}

// Prev steps back to the previous media, stopping at the first entry.
func (c *Carousel) Prev() {
	if c.index > 0 {
		c.index--
	}
}

// AtEnd reports whether the last media entry is centered.
func (c *Carousel) AtEnd() bool {
	return len(c.media) == 0 || c.index == len(c.media)-1
}

// SetAutoplay gates automatic advancement. The owner enables it only
// for the most visible card's carousel.
func (c *Carousel) SetAutoplay(on bool) {
	c.autoplay = on
	if !on {
		c.holdPaused = false
	}
}

// Autoplay reports whether automatic advancement is enabled.
func (c *Carousel) Autoplay() bool { return c.autoplay }

// AdvanceTick advances one media on an autoplay tick. No-op while
// autoplay is off or playback is held.
func (c *Carousel) AdvanceTick() {
	if !c.autoplay || c.holdPaused {
		return
	}
	c.Next()
}

// HoldStart pauses playback while a press is held.
func (c *Carousel) HoldStart() { c.holdPaused = true }

// HoldEnd resumes playback.
func (c *Carousel) HoldEnd() { c.holdPaused = false }

// Held reports whether playback is hold-paused.
func (c *Carousel) Held() bool { return c.holdPaused }

// ToggleMute flips the mute state and shows the indicator flash. The
// owner schedules HideMuteIndicator after MuteIndicatorDuration.
func (c *Carousel) ToggleMute() {
	c.muted = !c.muted
	c.muteIndicator = true
}

// Muted reports the mute state.
func (c *Carousel) Muted() bool { return c.muted }

// MuteIndicatorVisible reports whether the post-toggle flash is showing.
func (c *Carousel) MuteIndicatorVisible() bool { return c.muteIndicator }

// HideMuteIndicator clears the post-toggle flash.
func (c *Carousel) HideMuteIndicator() { c.muteIndicator = false }

// Playing reports whether the centered media is a video in active
// playback: autoplaying, not held. Muted video still plays.
func (c *Carousel) Playing() bool {
	current := c.Current()
	return current != nil && current.Kind == MediaVideo && c.autoplay && !c.holdPaused
}

// UpdateFrame advances the spring one frame toward the centered index.
// Returns true while the animation still needs frames.
func (c *Carousel) UpdateFrame() bool {
	target := float64(c.index)
	c.pos, c.vel = c.spring.Update(c.pos, c.vel, target)
	if c.Settled() {
		c.pos = target
		c.vel = 0
		return false
	}
	return true
}

// Settled reports whether the spring has come to rest on the target.
func (c *Carousel) Settled() bool {
	return math.Abs(c.pos-float64(c.index)) < settledTolerance && math.Abs(c.vel) < settledTolerance
}

// Offset returns the spring position, used to slide the frame during
// transitions.
func (c *Carousel) Offset() float64 { return c.pos }

// View renders the carousel frame at the given width.
func (c *Carousel) View(width int, muted lipgloss.Style, accent lipgloss.Style) string {
	current := c.Current()
	if current == nil {
		return muted.Render("no media")
	}

	var b strings.Builder

	// Mid-transition the frame glides in: the spring's distance from the
	// target page becomes a shrinking indent.
	if glide := int(math.Round(math.Abs(float64(c.index)-c.pos) * 4)); glide > 0 {
		if glide > 12 {
			glide = 12
		}
		b.WriteString(strings.Repeat(" ", glide))
	}

	icon := "▣"
	if current.Kind == MediaVideo {
		icon = "▶"
		if c.holdPaused {
			icon = "⏸"
		}
	}
	label := current.Label
	if label == "" {
		label = current.URL
	}
	b.WriteString(accent.Render(fmt.Sprintf("%s %s", icon, truncate(label, width-8))))
	b.WriteString("\n")

	// Position dots.
	if len(c.media) > 1 {
		dots := make([]string, len(c.media))
		for i := range c.media {
			if i == c.index {
				dots[i] = "●"
			} else {
				dots[i] = "○"
			}
		}
		b.WriteString(muted.Render(strings.Join(dots, " ")))
	}

	if current.Kind == MediaVideo && c.muteIndicator {
		state := "sound on"
		if c.muted {
			state = "muted"
		}
		b.WriteString("  ")
		b.WriteString(muted.Render("[" + state + "]"))
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
