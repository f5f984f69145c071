package ir

// Stats holds structural counts of a play.
type Stats struct {
	Acts            int `json:"acts" yaml:"acts"`
	Scenes          int `json:"scenes" yaml:"scenes"`
	Speeches        int `json:"speeches" yaml:"speeches"`
	Lines           int `json:"lines" yaml:"lines"`
	StageDirections int `json:"stage_directions" yaml:"stage_directions"`
}

// Summary is the per-play entry of an index page.
type Summary struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	File     string `json:"file" yaml:"file"`
}

// Stats counts the acts, scenes, speeches, dialogue lines and stage directions.
func (p *Play) Stats() Stats {
	var st Stats
	for _, a := range p.Acts {
		st.Acts++
		for _, s := range a.Scenes {
			st.Scenes++
			for _, part := range s.Parts {
				switch part.Type {
				case PartTypeStageDir:
					st.StageDirections++
				case PartTypeSpeech:
					st.Speeches++
					lines := len(part.Speech.DialogueLines())
					st.Lines += lines
					st.StageDirections += len(part.Speech.Lines) - lines
				}
			}
		}
	}
	return st
}

// Summary returns the index entry for the play rendered into file.
func (p *Play) Summary(file string) Summary {
	return Summary{
		Title:    TitleOr(p.Title, ""),
		Subtitle: TitleOr(p.Subtitle, ""),
		File:     file,
	}
}

// Speakers returns the distinct speaker names in order of first appearance.
func (p *Play) Speakers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range p.Acts {
		for _, s := range a.Scenes {
			for _, part := range s.Parts {
				if part.Type != PartTypeSpeech {
					continue
				}
				for _, name := range part.Speech.Speakers {
					if !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
		}
	}
	return names
}
