package subtitle

// Shift returns a copy of r with both times moved by seconds.
func (r Record) Shift(seconds int64) Record {
	var lines []string
	if r.Lines != nil {
		lines = make([]string, len(r.Lines))
		copy(lines, r.Lines)
	}
	return Record{
		ID:    r.ID,
		Start: r.Start.AddSeconds(seconds),
		End:   r.End.AddSeconds(seconds),
		Lines: lines,
	}
}

// Shift returns a new track with every record shifted. Parse statistics are kept.
func (t *Track) Shift(seconds int64) *Track {
	shifted := &Track{
		Records:   make([]Record, len(t.Records)),
		Skipped:   t.Skipped,
		Truncated: t.Truncated,
	}
	for i, rec := range t.Records {
		shifted.Records[i] = rec.Shift(seconds)
	}
	return shifted
}
