package core

// Sound identifies a short synthesized effect emitted by a game step.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundShoot
	SoundExplosion
	SoundHit
	SoundCoin
	SoundDrum
	SoundPunch
	SoundBlock
	SoundKO
	SoundScore
	SoundWin
)

var soundNames = [...]string{
	SoundNone:      "none",
	SoundShoot:     "shoot",
	SoundExplosion: "explosion",
	SoundHit:       "hit",
	SoundCoin:      "coin",
	SoundDrum:      "drum",
	SoundPunch:     "punch",
	SoundBlock:     "block",
	SoundKO:        "ko",
	SoundScore:     "score",
	SoundWin:       "win",
}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}
