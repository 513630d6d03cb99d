package main

import (
	"context"
	"time"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
)

var seedTemplates = []letter.Template{
	{
		Name:        "Recommendation Request",
		Description: "Ask a professor for a recommendation letter.",
		Content: "Dear {{professor}},\n\n" +
			"I am {{user_name}} ({{user_email}}), a student applying to {{program}}. " +
			"I would be honored if you could write a recommendation letter on my behalf. " +
			"The application deadline is {{deadline}}.\n\n" +
			"Thank you for your time.\n\n" +
			"Sincerely,\n{{user_name}}\n{{current_date}}",
		Variables: []letter.VariableSpec{
			{Name: "professor", Label: "Professor", Type: letter.TypeShortText, Required: true},
			{Name: "program", Label: "Program", Type: letter.TypeShortText, Required: true},
			{Name: "deadline", Label: "Application deadline", Type: letter.TypeDate},
		},
	},
	{
		Name:        "Scholarship Cover Letter",
		Description: "Introduce yourself to a scholarship committee.",
		Content: "Dear Selection Committee,\n\n" +
			"My name is {{user_name}} and I am applying for the {{scholarship}} for the year {{current_year}}. " +
			"{{motivation}}\n\n" +
			"Sincerely,\n{{user_name}}",
		Variables: []letter.VariableSpec{
			{Name: "scholarship", Label: "Scholarship name", Type: letter.TypeShortText, Required: true},
			{Name: "motivation", Label: "Motivation paragraph", Type: letter.TypeLongText, Required: true},
		},
	},
}

var seedUniversities = []university.University{
	{Name: "Tribhuvan University", City: "Kathmandu", Website: "https://tu.edu.np", Established: 1959},
	{Name: "Kathmandu University", City: "Dhulikhel", Website: "https://ku.edu.np", Established: 1991},
	{Name: "Pokhara University", City: "Pokhara", Website: "https://pu.edu.np", Established: 1997},
	{Name: "Purbanchal University", City: "Biratnagar", Website: "https://purbuniv.edu.np", Established: 1993},
}

// seed loads the default letter templates and universities, skipping
// entries that already exist.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, tmpl := range seedTemplates {
		tmpl.Slug = core.Slugify(tmpl.Name)
		if _, err := cli.ltrRepo.GetTemplateBySlug(ctx, tmpl.Slug); err == nil {
			continue
		} else if err != letter.ErrTemplateNotFound {
			return err
		}
		tmpl.CreatedAt = now
		tmpl.UpdatedAt = now
		if _, err := cli.ltrRepo.CreateTemplate(ctx, tmpl); err != nil {
			return err
		}
		logger.Printf("seeded letter template %q", tmpl.Name)
	}

	for _, uni := range seedUniversities {
		uni.Slug = core.Slugify(uni.Name)
		if _, err := cli.uniRepo.GetUniversityBySlug(ctx, uni.Slug); err == nil {
			continue
		} else if err != university.ErrNotFound {
			return err
		}
		uni.CreatedAt = now
		uni.UpdatedAt = now
		if _, err := cli.uniRepo.CreateUniversity(ctx, uni); err != nil {
			return err
		}
		logger.Printf("seeded university %q", uni.Name)
	}
	return nil
}
