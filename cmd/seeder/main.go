package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coldbrook/projscout"
	"github.com/coldbrook/projscout/core"
	"github.com/coldbrook/projscout/storage"
)

// Sample research projects for running the search stack without a live
// scrape.
var sampleProjects = []*core.ProjectRecord{
	{
		ID:          "covid-vaccine-elderly",
		Title:       "COVID-19 Vaccine Effectiveness in Elderly Populations",
		URL:         "https://www.opensafely.org/project/covid-vaccine-elderly",
		Summary:     "A comprehensive study examining the effectiveness of COVID-19 vaccines in patients aged 65 and above, analyzing breakthrough infections and hospitalization rates.",
		Description: "This research project investigates the real-world effectiveness of COVID-19 vaccines in elderly populations across England. Using primary care records, we analyze vaccination status, breakthrough infection rates, hospitalization outcomes, and mortality data. The study compares different vaccine types and dosing schedules, with particular focus on vulnerable subgroups including those with underlying health conditions.",
		Authors:     "Dr. Jane Smith, Prof. John Doe, Dr. Sarah Johnson",
		Topics:      "COVID-19, Vaccination, Elderly Care, Infectious Disease",
		Date:        "2023-09-15",
		Status:      "Completed",
	},
	{
		ID:          "mental-health-pandemic",
		Title:       "Mental Health Outcomes During Pandemic Lockdowns",
		URL:         "https://www.opensafely.org/project/mental-health-pandemic",
		Summary:     "Analysis of mental health service utilization and outcomes during various phases of pandemic lockdowns in England.",
		Description: "This study examines the impact of COVID-19 lockdown measures on mental health outcomes across different demographic groups. We analyze primary care consultations, prescriptions for mental health medications, emergency department visits, and referrals to specialist mental health services. The research aims to identify vulnerable populations and inform future public health policy.",
		Authors:     "Dr. Emily Brown, Dr. Michael Chen",
		Topics:      "Mental Health, COVID-19, Public Health, Social Determinants",
		Date:        "2023-06-20",
		Status:      "In Progress",
	},
	{
		ID:          "diabetes-adherence",
		Title:       "Diabetes Medication Adherence and Glycemic Control",
		URL:         "https://www.opensafely.org/project/diabetes-adherence",
		Summary:     "Investigating the relationship between medication adherence patterns and glycemic control outcomes in type 2 diabetes patients.",
		Description: "This research examines medication adherence patterns among type 2 diabetes patients and their association with glycemic control, complications, and healthcare utilization. Using prescription data and laboratory results, we identify factors associated with poor adherence and evaluate interventions to improve medication-taking behavior. The study includes analysis of socioeconomic factors, comorbidities, and healthcare access.",
		Authors:     "Prof. Robert Williams, Dr. Lisa Anderson",
		Topics:      "Diabetes, Medication Adherence, Chronic Disease Management, Primary Care",
		Date:        "2023-12-01",
		Status:      "Completed",
	},
	{
		ID:          "cancer-screening",
		Title:       "Cancer Screening Uptake in Underserved Communities",
		URL:         "https://www.opensafely.org/project/cancer-screening",
		Summary:     "Analyzing barriers to cancer screening participation in socioeconomically deprived areas and evaluating targeted intervention strategies.",
		Description: "This project investigates disparities in cancer screening uptake (breast, cervical, and colorectal) across different socioeconomic groups in England. We examine factors contributing to lower screening rates in deprived areas, including access barriers, awareness, and cultural factors. The study evaluates the effectiveness of targeted outreach programs and identifies best practices for improving screening participation.",
		Authors:     "Dr. Patricia Martinez, Dr. David Lee",
		Topics:      "Cancer Prevention, Screening, Health Equity, Public Health",
		Date:        "2023-08-10",
		Status:      "In Progress",
	},
	{
		ID:          "cvd-young-adults",
		Title:       "Cardiovascular Disease Risk Factors in Young Adults",
		URL:         "https://www.opensafely.org/project/cvd-young-adults",
		Summary:     "Epidemiological study of cardiovascular disease risk factors and early intervention opportunities in adults aged 18-45.",
		Description: "This research examines the prevalence and trends of cardiovascular disease risk factors in young adults, including hypertension, hyperlipidemia, obesity, and diabetes. We analyze temporal trends, demographic patterns, and the impact of lifestyle factors. The study aims to identify opportunities for early intervention and prevention strategies targeting younger populations to reduce long-term cardiovascular disease burden.",
		Authors:     "Dr. Thomas Clark, Dr. Jennifer White, Prof. Andrew Taylor",
		Topics:      "Cardiovascular Disease, Prevention, Young Adults, Risk Factors",
		Date:        "2023-11-05",
		Status:      "Completed",
	},
	{
		ID:          "antibiotic-prescribing",
		Title:       "Antibiotic Prescribing Patterns in Primary Care",
		URL:         "https://www.opensafely.org/project/antibiotic-prescribing",
		Summary:     "Analysis of antibiotic prescribing trends and appropriateness in primary care settings to inform antimicrobial stewardship efforts.",
		Description: "This study examines antibiotic prescribing patterns in primary care across England, assessing appropriateness according to clinical guidelines and identifying factors associated with inappropriate prescribing. We analyze variation between practices, seasonal patterns, and the impact of antimicrobial stewardship interventions. The research aims to support efforts to reduce antibiotic resistance through improved prescribing practices.",
		Authors:     "Dr. Susan Miller, Dr. Richard Harris",
		Topics:      "Antimicrobial Resistance, Prescribing, Primary Care, Stewardship",
		Date:        "2023-07-22",
		Status:      "In Progress",
	},
	{
		ID:          "long-covid",
		Title:       "Long COVID Syndrome: Clinical Characteristics and Outcomes",
		URL:         "https://www.opensafely.org/project/long-covid",
		Summary:     "Characterizing the clinical features, risk factors, and long-term outcomes of patients with post-acute COVID-19 syndrome.",
		Description: "This research project aims to better understand Long COVID syndrome by analyzing clinical records of patients experiencing persistent symptoms following acute COVID-19 infection. We examine symptom patterns, duration, healthcare utilization, impact on quality of life, and factors predicting prolonged symptoms. The study includes analysis of different COVID-19 variants and vaccination status.",
		Authors:     "Prof. Mary Thompson, Dr. James Wilson",
		Topics:      "COVID-19, Long COVID, Post-Acute Infection, Chronic Illness",
		Date:        "2023-10-12",
		Status:      "In Progress",
	},
	{
		ID:          "childhood-obesity",
		Title:       "Childhood Obesity Prevention Interventions",
		URL:         "https://www.opensafely.org/project/childhood-obesity",
		Summary:     "Evaluating the effectiveness of primary care-based childhood obesity prevention and management interventions.",
		Description: "This study evaluates various interventions for childhood obesity prevention and management delivered through primary care settings. We assess the effectiveness of different approaches including lifestyle counseling, family-based interventions, and referral to specialist services. The research examines factors associated with successful weight management and identifies best practices for primary care providers.",
		Authors:     "Dr. Karen Moore, Dr. Steven Jackson",
		Topics:      "Childhood Obesity, Prevention, Pediatrics, Lifestyle Intervention",
		Date:        "2023-09-28",
		Status:      "Completed",
	},
	{
		ID:          "opioid-prescribing",
		Title:       "Opioid Prescribing for Chronic Pain Management",
		URL:         "https://www.opensafely.org/project/opioid-prescribing",
		Summary:     "Analyzing trends in opioid prescribing for chronic pain and evaluating safer prescribing practices and alternative treatments.",
		Description: "This research examines opioid prescribing patterns for chronic pain management in primary care, including trends over time, dose escalation patterns, and concurrent prescribing of other medications. We evaluate the adoption of safer prescribing practices and the use of alternative pain management approaches. The study aims to inform strategies for reducing opioid-related harm while ensuring adequate pain management.",
		Authors:     "Dr. Laura Martinez, Prof. Christopher Davis",
		Topics:      "Pain Management, Opioids, Prescribing Safety, Chronic Pain",
		Date:        "2023-08-30",
		Status:      "In Progress",
	},
	{
		ID:          "asthma-control",
		Title:       "Asthma Control and Inhaler Technique in Primary Care",
		URL:         "https://www.opensafely.org/project/asthma-control",
		Summary:     "Investigating asthma control levels and the relationship between inhaler technique education and clinical outcomes.",
		Description: "This study examines levels of asthma control in primary care patients and evaluates the impact of inhaler technique assessment and education on clinical outcomes. We analyze prescription patterns, exacerbation rates, emergency healthcare utilization, and the effectiveness of asthma review protocols. The research aims to identify opportunities for improving asthma management in primary care settings.",
		Authors:     "Dr. Michelle Adams, Dr. Paul Robinson",
		Topics:      "Asthma, Chronic Disease Management, Primary Care, Patient Education",
		Date:        "2023-11-18",
		Status:      "Completed",
	},
}

var dataDir = flag.String("data-dir", "./data", "directory to write the sample record file")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	path := filepath.Join(*dataDir, projscout.RecordFileName)
	store := storage.NewRecordStore(path)

	if err := store.Save(sampleProjects); err != nil {
		slog.Error("failed to write sample records", "path", path, "err", err)
		os.Exit(1)
	}

	slog.Info("wrote sample records", "path", path, "records", len(sampleProjects))
}
