package system

import (
	"github.com/milk9111/tower/assets"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
)

// eventCues maps gameplay events to the clip names on the player's Audio.
var eventCues = map[ecs.EventType]string{
	ecs.EventShotFired:    "shot",
	ecs.EventDashStarted:  "dash",
	ecs.EventEnemyHit:     "hit",
	ecs.EventLevelChanged: "level_up",
}

// AudioSystem turns this frame's events into sound cues and plays flagged
// clips. With output disabled cues are still flagged and then dropped.
type AudioSystem struct {
	output bool
}

func NewAudioSystem(output bool) *AudioSystem {
	return &AudioSystem{output: output}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	queueCues(w)

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Clips))
		for len(audioComp.Players) < count {
			audioComp.Players = append(audioComp.Players, nil)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if !a.output {
				continue
			}

			player := audioComp.Players[i]
			if player == nil {
				player = assets.NewPlayer(audioComp.Clips[i])
				audioComp.Players[i] = player
			}
			if i < len(audioComp.Volume) {
				player.SetVolume(audioComp.Volume[i])
			}
			_ = player.Rewind()
			player.Play()
		}
	})
}

func queueCues(w *ecs.World) {
	p, ok := player(w)
	if !ok {
		return
	}
	audioComp, ok := ecs.Get(w, p, component.AudioComponent.Kind())
	if !ok {
		return
	}
	w.Events().Each(func(evt ecs.Event) {
		if name, ok := eventCues[evt.Type]; ok {
			audioComp.Trigger(name)
		}
	})
}
