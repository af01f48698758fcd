// seeders/lesson_seeder.go
package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nextmimo/nextmimo_api/model"
	"gorm.io/gorm"
)

// LessonSeeder handles seeding lessons for the seeded courses
type LessonSeeder struct {
	db *gorm.DB
}

// NewLessonSeeder creates a new lesson seeder
func NewLessonSeeder(db *gorm.DB) *LessonSeeder {
	return &LessonSeeder{db: db}
}

// SeedLessons seeds the database with starter lessons
func (s *LessonSeeder) SeedLessons() error {
	lessons := s.getStarterLessons()

	for _, lesson := range lessons {
		var existingLesson model.Lesson
		if err := s.db.Where("id = ?", lesson.ID).First(&existingLesson).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&lesson).Error; err != nil {
					log.Printf("Error creating lesson %s: %v", lesson.Title, err)
					return err
				}
				log.Printf("Created lesson: %s", lesson.Title)
			} else {
				log.Printf("Error checking lesson %s: %v", lesson.Title, err)
				return err
			}
		} else {
			log.Printf("Lesson %s already exists, skipping", lesson.Title)
		}
	}

	log.Println("Lesson seeding completed successfully")
	return nil
}

func sectionsJSON(kinds ...string) json.RawMessage {
	data, _ := json.Marshal(kinds)
	return data
}

func questionsJSON(questions []model.Question) json.RawMessage {
	data, _ := json.Marshal(questions)
	return data
}

func exerciseJSON(ex model.Exercise) json.RawMessage {
	data, _ := json.Marshal(ex)
	return data
}

// getStarterLessons returns the first lessons of each seeded course
func (s *LessonSeeder) getStarterLessons() []model.Lesson {
	now := time.Now()

	return []model.Lesson{
		{
			ID:       "lesson_html_elements",
			CourseID: "course_html",
			Title:    "Your First HTML Page",
			Order:    1,
			Sections: sectionsJSON("theory", "example", "exercise", "quiz"),
			Theory: "Every HTML page is a tree of elements. An element is written with an " +
				"opening tag, content, and a closing tag: <p>Hello</p>. The <html>, <head> " +
				"and <body> elements give the page its skeleton.",
			ExampleCode: "<!DOCTYPE html>\n<html>\n  <head>\n    <title>My Page</title>\n  </head>\n  <body>\n    <h1>Hello, web!</h1>\n  </body>\n</html>",
			Questions: questionsJSON([]model.Question{
				{
					ID:       "q_html1_1",
					Type:     "multiple_choice",
					Question: "Which element holds the visible content of a page?",
					Options:  []string{"<head>", "<body>", "<title>", "<html>"},
					Answer:   1,
				},
				{
					ID:       "q_html1_2",
					Type:     "multiple_choice",
					Question: "How is a paragraph element written?",
					Options:  []string{"(p)text(/p)", "<p>text</p>", "{p}text{/p}", "[p]text[/p]"},
					Answer:   1,
				},
			}),
			Exercise: exerciseJSON(model.Exercise{
				Instructions: "Create a page with a top-level heading that says anything you like.",
				StarterCode:  "<!DOCTYPE html>\n<html>\n  <body>\n\n  </body>\n</html>",
				Rules: []model.ExerciseRule{
					{Type: "contains", Value: "<h1>", Message: "Add an <h1> heading"},
					{Type: "contains", Value: "</h1>", Message: "Close the <h1> heading"},
				},
			}),
			XPReward:      100,
			PassThreshold: 0.6,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:       "lesson_css_selectors",
			CourseID: "course_css",
			Title:    "Selectors and the Box Model",
			Order:    1,
			Sections: sectionsJSON("theory", "example", "exercise", "quiz"),
			Theory: "CSS rules pair a selector with declarations. A class selector like " +
				".card targets every element carrying that class. Each element is a box " +
				"with content, padding, border and margin.",
			ExampleCode: ".card {\n  padding: 16px;\n  border: 1px solid #ddd;\n  margin-bottom: 8px;\n}",
			Questions: questionsJSON([]model.Question{
				{
					ID:       "q_css1_1",
					Type:     "multiple_choice",
					Question: "Which selector targets elements with class \"note\"?",
					Options:  []string{"#note", ".note", "note", "*note"},
					Answer:   1,
				},
				{
					ID:       "q_css1_2",
					Type:     "multiple_choice",
					Question: "Which box layer sits between padding and margin?",
					Options:  []string{"content", "border", "outline", "gap"},
					Answer:   1,
				},
			}),
			Exercise: exerciseJSON(model.Exercise{
				Instructions: "Write a rule for the class \"banner\" that sets a padding.",
				StarterCode:  "/* your css here */\n",
				Rules: []model.ExerciseRule{
					{Type: "contains", Value: ".banner", Message: "Use the .banner class selector"},
					{Type: "regex", Value: `padding\s*:`, Message: "Set a padding declaration"},
				},
			}),
			XPReward:      100,
			PassThreshold: 0.6,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:       "lesson_js_variables",
			CourseID: "course_js",
			Title:    "Variables and Functions",
			Order:    1,
			Sections: sectionsJSON("theory", "example", "exercise", "quiz"),
			Theory: "JavaScript stores values in variables declared with let or const. " +
				"Functions bundle reusable behavior and return results with the return keyword.",
			ExampleCode: "const greeting = 'Hello';\n\nfunction greet(name) {\n  return greeting + ', ' + name + '!';\n}\n\nconsole.log(greet('web'));",
			Questions: questionsJSON([]model.Question{
				{
					ID:       "q_js1_1",
					Type:     "multiple_choice",
					Question: "Which keyword declares a variable that cannot be reassigned?",
					Options:  []string{"let", "var", "const", "static"},
					Answer:   2,
				},
				{
					ID:       "q_js1_2",
					Type:     "multiple_choice",
					Question: "What does a function use to hand a value back to its caller?",
					Options:  []string{"yield", "return", "export", "print"},
					Answer:   1,
				},
			}),
			Exercise: exerciseJSON(model.Exercise{
				Instructions: "Declare a function named double that returns its argument times two.",
				StarterCode:  "// your code here\n",
				Rules: []model.ExerciseRule{
					{Type: "regex", Value: `function\s+double`, Message: "Declare a function named double"},
					{Type: "contains", Value: "return", Message: "Return the result"},
				},
			}),
			XPReward:      100,
			PassThreshold: 0.6,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:       "lesson_js_project",
			CourseID: "course_js",
			Title:    "Project: Interactive Counter",
			Order:    2,
			Sections: sectionsJSON("theory", "project"),
			Theory: "Bring it together: wire a button's click event to update a counter " +
				"shown on the page. Submit your project when it works.",
			XPReward:      150,
			PassThreshold: 0.6,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
