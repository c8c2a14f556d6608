package imagegen

import "fmt"

// Intent - 이미지 프롬프트 프레이밍을 결정하는 서브앱 태그
// visualPrompt 키워드 추측 대신 구조적으로 전달한다.
type Intent string

const (
	IntentBranding  Intent = "branding"
	IntentLand      Intent = "land"
	IntentTownhouse Intent = "townhouse"
)

// strictNegativePrompt - 공용 negative prompt (mid-shot 계열)
const strictNegativePrompt = "no text, no writing, no watermark, no logo, no signature, no typography, " +
	"high quality, photorealistic, 8k, hdr, deformed hands, bad anatomy, close up face, wide shot, " +
	"full body, standing far away, small figure"

// townhouseNegativePrompt - Townhouse는 full body가 필요해서 별도 구성
const townhouseNegativePrompt = "no text, no writing, no watermark, no logo, no signature, no typography, " +
	"high quality, photorealistic, 8k, hdr, deformed hands, bad anatomy, close up face, cropped head, " +
	"cropped feet, portrait shot, close up, floating character, ghost, looking away, back to camera, profile view"

// BuildImagePrompt - Scene 이미지 생성 프롬프트 조립
// 배경 이미지가 있으면 "기존 이미지에 인물 삽입" 지시가 우선한다.
func BuildImagePrompt(intent Intent, visualPrompt string, hasBackground bool) string {
	poseInstruction := ""
	negativePrompt := strictNegativePrompt

	switch {
	case intent == IntentTownhouse && hasBackground:
		poseInstruction = `TASK: INSERT CHARACTER INTO EXISTING IMAGE.
BACKGROUND: Use IMAGE 1 (Context) as the EXACT background. Do not modify the room structure.
CHARACTER: Use IMAGE 2 (Face) for Strict Identity Lock (99% Match).
FRAMING: FULL BODY STANDING SHOT. Head to toe visible.
PLACEMENT: Character stands naturally on the floor of the room in IMAGE 1.
LIGHTING: Match the lighting of IMAGE 1. Ensure face is well-lit.
INTERACTION: Character MUST LOOK DIRECTLY AT THE CAMERA. Direct Eye Contact.
FACE QUALITY: Ensure the face is sharp and recognizable despite the full-body framing.`
		negativePrompt = townhouseNegativePrompt

	case intent == IntentTownhouse:
		// 배경 이미지가 없는 Townhouse: full body 프레이밍만 유지
		poseInstruction = `FRAMING: FULL BODY STANDING SHOT. Head to toe visible.
POSE: Standing naturally inside a modern interior.
EYES: Direct eye contact.
FACE QUALITY: Ensure the face is sharp and recognizable despite the full-body framing.`
		negativePrompt = townhouseNegativePrompt

	case intent == IntentBranding:
		poseInstruction = `FRAMING: Mid-shot (Waist-up).
POSE: SITTING comfortably or Standing relaxed. Hands visible and gesturing naturally.
COMPOSITION: Subject centered or rule-of-thirds.
EYES: Direct eye contact.
STYLE: Personal Brand, YouTube Expert.`

	default: // IntentLand
		poseInstruction = `FRAMING: Professional TV News Anchor MID-SHOT (Waist-up only). DO NOT SHOW LEGS.
COMPOSITION: Subject positioned strictly at the 1/3 vertical line.
POSE: Standing or sitting erect.
EYES: Direct eye contact.
STYLE: TV News Broadcast.`
	}

	return fmt.Sprintf("%s %s. %s", poseInstruction, visualPrompt, negativePrompt)
}

// BuildRegenerationPrompt - 원본 visualPrompt와 사용자 피드백을 합친 수정 프롬프트
func BuildRegenerationPrompt(originalVisualPrompt, feedback string) string {
	return fmt.Sprintf(`EDIT REQUEST: %s.
BASE SCENE CONTEXT: %s.

STRICT CONSTRAINTS:
1. PRESERVE IDENTITY: Keep the face from Image 2 EXACTLY.
2. PRESERVE BACKGROUND: Keep the room/environment from Image 1 EXACTLY.
3. EXECUTE CHANGE: Only modify the character's pose/expression or camera angle as requested by the EDIT REQUEST.
4. QUALITY: Photorealistic, 4k, HDR.`, feedback, originalVisualPrompt)
}
