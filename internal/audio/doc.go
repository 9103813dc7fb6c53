package audio

// Package audio decodes pad audio into PCM and drives playback: one voice per
// pad, volume fades, loop and restart handling. Output goes through an oto
// context; tests plug in their own Backend.
