package progression

// MarkSectionComplete marks the given section done and advances the active
// section pointer to the first remaining incomplete section. Marking an
// already-completed section is a no-op. Sections outside the lesson's
// declared set are rejected with ErrInvalidSection and the input is
// returned unchanged.
func MarkSectionComplete(p LessonProgress, kind SectionKind) (LessonProgress, error) {
	idx := p.sectionIndex(kind)
	if idx < 0 {
		return p, ErrInvalidSection
	}

	if p.Sections[idx].Completed {
		return p, nil
	}

	out := p.clone()
	out.Sections[idx].Completed = true

	for _, s := range out.Sections {
		if !s.Completed {
			out.ActiveSection = s.Kind
			break
		}
	}

	return out, nil
}
